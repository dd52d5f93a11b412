package httpserver

import (
	"context"
	"log"

	"online-bookstore/internal/domain"
	booksvc "online-bookstore/internal/service/book"
	cartsvc "online-bookstore/internal/service/cart"
	checkoutsvc "online-bookstore/internal/service/checkout"
	usersvc "online-bookstore/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, in booksvc.Input) (*domain.Book, error)
	Update(ctx context.Context, id int64, in booksvc.Input) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

type CartService interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID int64, in cartsvc.AddItemInput) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) (*domain.Cart, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID int64, in checkoutsvc.Input) (*domain.Order, error)
}

type OrderService interface {
	Get(ctx context.Context, caller domain.Caller, orderID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context, caller domain.Caller) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, caller domain.Caller, orderID int64, status string) (*domain.Order, error)
}

// Deps bundles the services the router dispatches to.
type Deps struct {
	Users    UserService
	Books    BookService
	Carts    CartService
	Checkout CheckoutService
	Orders   OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/signup", signupHandler(deps.Users))
	router.POST("/auth/login", loginHandler(deps.Users))

	api := router.Group("/api")

	books := api.Group("/books")
	books.GET("", listBooksHandler(deps.Books))
	books.GET("/search", searchBooksHandler(deps.Books))
	books.GET("/:id", getBookHandler(deps.Books))

	booksAdmin := api.Group("/books", authMiddleware(deps.Users), adminOnly())
	booksAdmin.POST("", createBookHandler(deps.Books))
	booksAdmin.PUT("/:id", updateBookHandler(deps.Books))
	booksAdmin.DELETE("/:id", deleteBookHandler(deps.Books))

	cart := api.Group("/cart", authMiddleware(deps.Users))
	cart.GET("", getCartHandler(deps.Carts))
	cart.POST("/items", addCartItemHandler(deps.Carts))
	cart.PUT("/items/:itemId", updateCartItemHandler(deps.Carts))
	cart.DELETE("/items/:itemId", removeCartItemHandler(deps.Carts))
	cart.DELETE("", clearCartHandler(deps.Carts))

	orders := api.Group("/orders", authMiddleware(deps.Users))
	orders.POST("/checkout", checkoutHandler(deps.Checkout))
	orders.GET("", listOrdersHandler(deps.Orders))
	orders.GET("/all", listAllOrdersHandler(deps.Orders))
	orders.GET("/:id", getOrderHandler(deps.Orders))
	orders.PUT("/:id/status", updateOrderStatusHandler(deps.Orders))

	return router, nil
}
