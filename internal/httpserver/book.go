package httpserver

import (
	"net/http"
	"strconv"

	booksvc "online-bookstore/internal/service/book"

	"github.com/gin-gonic/gin"
)

func listBooksHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			out interface{}
			err error
		)
		if category := c.Query("category"); category != "" {
			out, err = books.ListByCategory(c.Request.Context(), category)
		} else {
			out, err = books.List(c.Request.Context())
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func searchBooksHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := books.Search(c.Request.Context(), c.Query("query"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getBookHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		out, err := books.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createBookHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in booksvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid book payload")
			return
		}
		out, err := books.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func updateBookHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in booksvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid book payload")
			return
		}
		out, err := books.Update(c.Request.Context(), id, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteBookHandler(books BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := books.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// pathID parses an integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
