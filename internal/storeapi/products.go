package storeapi

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/trendora/storefront/internal/catalog"
	"github.com/trendora/storefront/internal/imagestore"
)

const maxProductImages = 4

func (h *Handlers) addProduct(c echo.Context) error {
	files, err := readImageFiles(c)
	if err != nil {
		return fail(c, err.Error())
	}

	in := catalog.AddProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		SubCategory: c.FormValue("subCategory"),
		Sizes:       c.FormValue("sizes"),
		Bestseller:  c.FormValue("bestseller"),
		Images:      files,
	}
	product, err := h.catalog.AddProduct(c.Request().Context(), in)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{
		"message": "product added",
		"product": product,
	})
}

func readImageFiles(c echo.Context) ([]imagestore.File, error) {
	var files []imagestore.File
	for i := 1; i <= maxProductImages; i++ {
		header, err := c.FormFile(fmt.Sprintf("image%d", i))
		if err != nil {
			// absent slots are simply skipped
			continue
		}
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open image%d: %w", i, err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("read image%d: %w", i, err)
		}
		files = append(files, imagestore.File{Name: header.Filename, Data: data})
	}
	return files, nil
}

func (h *Handlers) listProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"products": products})
}

type productIDPayload struct {
	ID        string `json:"id" form:"id"`
	ProductID string `json:"productId" form:"productId"`
}

func (h *Handlers) removeProduct(c echo.Context) error {
	var payload productIDPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	id, err := cast.ToInt64E(payload.ID)
	if err != nil || id == 0 {
		return fail(c, "invalid product id")
	}
	if err := h.catalog.RemoveProduct(c.Request().Context(), id); err != nil {
		return fail(c, err.Error())
	}
	return okMsg(c, "product removed")
}

func (h *Handlers) singleProduct(c echo.Context) error {
	var payload productIDPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, "unable to parse request")
	}
	id, err := cast.ToInt64E(payload.ProductID)
	if err != nil || id == 0 {
		return fail(c, "invalid product id")
	}
	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, map[string]interface{}{"product": product})
}
