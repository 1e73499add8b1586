package httpserver

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/storage"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/internal/util"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type ProductHTTP struct {
	Svc     *service.CatalogService
	Storage storage.Uploader
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	skip, limit := util.Calculate(page, limit)

	total, items, err := h.Svc.List(ctx, skip, limit)
	if err != nil {
		return serviceError(c, l, err, "Products not found", "Error retrieving products")
	}

	pagination := transport.NewPagination(page, limit, util.NumberOfPages(total, limit))
	return respondList(c, "Products retrieved successfully", items, len(items), pagination)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	product, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, l, err, "Product not found", "Error retrieving product")
	}
	return respond(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if isMultipart(c) {
		parsed, err := h.parseCreateForm(c)
		if err != nil {
			return serviceError(c, l, err, "Product not found", "Error creating product")
		}
		req = *parsed
	} else if err := c.Bind(&req); err != nil {
		l.Warn("create_product_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		l.Warn("create_product_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		return serviceError(c, l, err, "Product not found", "Error creating product")
	}

	l.Info("product_created", "product", product.ID.Hex(), "slug", product.Slug)
	return respond(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var req transport.UpdateProductRequest
	if isMultipart(c) {
		parsed, err := h.parseUpdateForm(c)
		if err != nil {
			return serviceError(c, l, err, "Product not found", "Error updating product")
		}
		req = *parsed
	} else if err := c.Bind(&req); err != nil {
		l.Warn("update_product_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		l.Warn("update_product_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	product, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return serviceError(c, l, err, "Product not found", "Error updating product")
	}

	l.Info("product_updated", "product", product.ID.Hex())
	return respond(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return serviceError(c, l, err, "Product not found", "Error deleting product")
	}

	l.Info("product_deleted", "product", c.Param("id"))
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// parseCreateForm assembles the request from multipart form fields. Numeric
// fields arrive as strings and are coerced before validation; sizes/tags may
// be a JSON array or a comma-separated string.
func (h *ProductHTTP) parseCreateForm(c echo.Context) (*transport.CreateProductRequest, error) {
	req := &transport.CreateProductRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Slug:        c.FormValue("slug"),
		Sizes:       transport.DecodeListField(c.FormValue("sizes")),
		Tags:        transport.DecodeListField(c.FormValue("tags")),
		Images:      transport.DecodeListField(c.FormValue("images")),
	}

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price must be a number", service.ErrValidation)
		}
		req.Price = &price
	}
	if raw := c.FormValue("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: stock must be a number", service.ErrValidation)
		}
		req.Stock = stock
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		req.Images = urls
	}
	return req, nil
}

func (h *ProductHTTP) parseUpdateForm(c echo.Context) (*transport.UpdateProductRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid multipart form", service.ErrValidation)
	}

	req := &transport.UpdateProductRequest{}
	field := func(name string) *string {
		if vs, ok := form.Value[name]; ok && len(vs) > 0 {
			return &vs[0]
		}
		return nil
	}

	req.Title = field("title")
	req.Description = field("description")
	req.Category = field("category")
	req.Slug = field("slug")

	if raw := field("price"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price must be a number", service.ErrValidation)
		}
		req.Price = &price
	}
	if raw := field("stock"); raw != nil {
		stock, err := strconv.Atoi(*raw)
		if err != nil {
			return nil, fmt.Errorf("%w: stock must be a number", service.ErrValidation)
		}
		req.Stock = &stock
	}
	if raw := field("sizes"); raw != nil {
		req.Sizes = transport.DecodeListField(*raw)
	}
	if raw := field("tags"); raw != nil {
		req.Tags = transport.DecodeListField(*raw)
	}
	if raw := field("images"); raw != nil {
		req.Images = transport.DecodeListField(*raw)
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		req.Images = urls
	}
	return req, nil
}

func (h *ProductHTTP) uploadImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if h.Storage == nil {
		return nil, errors.New("image storage is not configured")
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if err := checkImageFile(fh); err != nil {
			return nil, err
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read uploaded file", service.ErrValidation)
		}

		url, err := h.Storage.Upload(c.Request().Context(), f, fh.Filename)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func checkImageFile(fh *multipart.FileHeader) error {
	if fh.Size > storage.MaxUploadSize {
		return fmt.Errorf("%w: image exceeds the 10MB size limit", service.ErrValidation)
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return fmt.Errorf("%w: invalid image file", service.ErrValidation)
	}
	return nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
