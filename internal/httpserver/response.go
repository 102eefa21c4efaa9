package httpserver

import (
	"errors"
	"net/http"

	"shopping-cart/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	CustomerID            string             `json:"customerId"`
	LineItems             []lineItemResponse `json:"lineItems"`
	TotalPrice            string             `json:"totalPrice"`
	TotalLineItemQuantity int                `json:"totalLineItemQuantity"`
}

type lineItemResponse struct {
	Position    int    `json:"position"`
	ProductCode int64  `json:"productCode"`
	Description string `json:"description"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
}

type productResponse struct {
	Code        int64  `json:"code"`
	Description string `json:"description"`
	ListPrice   string `json:"listPrice"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	RequestID  string `json:"requestId,omitempty"`
}

// toCartResponse renders prices exactly as stored, without rounding.
func toCartResponse(customerID string, cart *domain.Cart) cartResponse {
	items := cart.Items()
	out := cartResponse{
		CustomerID: customerID,
		LineItems:  make([]lineItemResponse, 0, len(items)),
		TotalPrice: domain.SumLineItems(items).String(),
	}
	for i, item := range items {
		out.LineItems = append(out.LineItems, lineItemResponse{
			Position:    i,
			ProductCode: item.Product().Code(),
			Description: item.Product().Description(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
			TotalPrice:  item.Total().String(),
		})
		out.TotalLineItemQuantity += item.Quantity()
	}
	return out
}

func toProductResponse(item domain.CatalogItem) productResponse {
	return productResponse{
		Code:        item.Product.Code(),
		Description: item.Product.Description(),
		ListPrice:   item.ListPrice.StringFixed(2),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, domain.ErrInvalidCustomer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoCarts):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	requestID := c.GetString(requestIDKey)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Printf("http: %s %s request_id=%s error=%v", c.Request.Method, c.FullPath(), requestID, err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: msg, RequestID: requestID})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    msg,
		RequestID:  c.GetString(requestIDKey),
	})
}
