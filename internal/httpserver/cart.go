package httpserver

import (
	"net/http"

	cartsvc "online-bookstore/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := carts.Get(c.Request.Context(), callerFrom(c).UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func addCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid cart item payload")
			return
		}
		out, err := carts.AddItem(c.Request.Context(), callerFrom(c).UserID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func updateCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := pathID(c, "itemId")
		if !ok {
			return
		}
		var in updateCartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid cart item payload")
			return
		}
		out, err := carts.UpdateItem(c.Request.Context(), callerFrom(c).UserID, itemID, in.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func removeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := pathID(c, "itemId")
		if !ok {
			return
		}
		out, err := carts.RemoveItem(c.Request.Context(), callerFrom(c).UserID, itemID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func clearCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := carts.Clear(c.Request.Context(), callerFrom(c).UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
