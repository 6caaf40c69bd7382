package apihandlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"shopdesk/internal/app"
	"shopdesk/internal/category"
	"shopdesk/internal/models"
	"shopdesk/internal/query"
	"shopdesk/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// HealthHandler reports 503 when the CSV file exists but cannot be read.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.Ping(c.Request.Context()); err != nil {
		log.WithError(err).Warn("Health check failed")
		Unavailable(c, "store unavailable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) ListProductsHandler(c *gin.Context) {
	params := query.ParseParams(c.Request.URL.Query(), h.App.Processor.DefaultPageSize())

	page, err := h.App.ProductService.List(c.Request.Context(), params)
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *APIHandler) GetProductHandler(c *gin.Context) {
	rec, err := h.App.ProductService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *APIHandler) CreateProductHandler(c *gin.Context) {
	payload, err := bindRecord(c)
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// A write that has started runs to completion even if the client goes away.
	rec, err := h.App.ProductService.Create(context.WithoutCancel(c.Request.Context()), payload)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rec})
}

func (h *APIHandler) UpdateProductHandler(c *gin.Context) {
	patch, err := bindRecord(c)
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.App.ProductService.Update(context.WithoutCancel(c.Request.Context()), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *APIHandler) DeleteProductHandler(c *gin.Context) {
	if err := h.App.ProductService.Delete(context.WithoutCancel(c.Request.Context()), c.Param("id")); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategoriesHandler returns the whole tree as a single page.
func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	res, err := h.App.CategoryService.Tree(c.Request.Context())
	if err != nil {
		h.fail(c, "build category tree", err)
		return
	}
	nodes := res.Nodes
	if nodes == nil {
		nodes = []category.Node{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  nodes,
		"total": res.Total,
		"page":  1,
		"rows":  res.Total,
	})
}

func (h *APIHandler) ListBrandsHandler(c *gin.Context) {
	brands, err := h.App.ProductService.Brands(c.Request.Context())
	if err != nil {
		h.fail(c, "list brands", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brands, "total": len(brands)})
}

// fail maps service errors onto the error envelope.
func (h *APIHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrEmptyID):
		BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, store.ErrDuplicate):
		Conflict(c, err.Error())
	default:
		log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Errorf("%s failed", op)
		Internal(c, fmt.Sprintf("%s: internal error", op))
	}
}

// bindRecord decodes a flat JSON object. Numbers and booleans are kept as
// their text form; null becomes "".
func bindRecord(c *gin.Context) (models.Record, error) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, err
	}

	rec := make(models.Record, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			rec[k] = ""
		case string:
			rec[k] = val
		case float64:
			rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			rec[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %q must be a string, number or boolean", k)
		}
	}
	return rec, nil
}
