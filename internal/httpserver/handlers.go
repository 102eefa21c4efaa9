package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	cartsvc "shopping-cart/internal/service/cart"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	items, err := h.products.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]productResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toProductResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
}

func (h *handlers) getProduct(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		badRequest(c, "product code must be an integer")
		return
	}
	item, err := h.products.Get(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*item))
}

func (h *handlers) listCarts(c *gin.Context) {
	customers := h.carts.Customers(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

func (h *handlers) openCart(c *gin.Context) {
	customerID := c.Param("customerId")
	cart, err := h.carts.Open(c.Request.Context(), customerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(customerID, cart))
}

func (h *handlers) getCart(c *gin.Context) {
	customerID := c.Param("customerId")
	cart, err := h.carts.Get(c.Request.Context(), customerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(customerID, cart))
}

func (h *handlers) invalidateCart(c *gin.Context) {
	invalidated := h.carts.Invalidate(c.Request.Context(), c.Param("customerId"))
	c.JSON(http.StatusOK, gin.H{"invalidated": invalidated})
}

func (h *handlers) addItem(c *gin.Context) {
	var in cartsvc.AddItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	customerID := c.Param("customerId")
	cart, err := h.carts.AddItem(c.Request.Context(), customerID, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(customerID, cart))
}

func (h *handlers) removeItem(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("productCode"), 10, 64)
	if err != nil {
		badRequest(c, "product code must be an integer")
		return
	}
	removed, err := h.carts.RemoveItem(c.Request.Context(), c.Param("customerId"), cartsvc.RemoveItemInput{
		ProductCode: code,
		Description: strings.TrimSpace(c.Query("description")),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *handlers) removeItemAt(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		badRequest(c, "position must be an integer")
		return
	}
	removed := h.carts.RemoveItemAt(c.Request.Context(), c.Param("customerId"), position)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *handlers) averageTicket(c *gin.Context) {
	avg, count, err := h.carts.AverageTicket(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageTicket": avg.StringFixed(2), "carts": count})
}
