package httpserver

import (
	"net/http"

	checkoutsvc "online-bookstore/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func checkoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid checkout payload")
			return
		}
		out, err := checkout.Checkout(c.Request.Context(), callerFrom(c).UserID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func listOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := orders.ListForUser(c.Request.Context(), callerFrom(c).UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func listAllOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := orders.ListAll(c.Request.Context(), callerFrom(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		out, err := orders.Get(c.Request.Context(), callerFrom(c), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func updateOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in updateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid status payload")
			return
		}
		out, err := orders.UpdateStatus(c.Request.Context(), callerFrom(c), id, in.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
