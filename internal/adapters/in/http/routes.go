package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface mirrors the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/chat)
	PostChat(ctx echo.Context) error
	// (GET /api/user/{id})
	GetUser(ctx echo.Context, id int64) error
	// (GET /api/sessions/{userId})
	GetSession(ctx echo.Context, userID int64) error
	// (GET /api/customers/{id}/orders)
	GetCustomerOrders(ctx echo.Context, id int64, params GetCustomerOrdersParams) error
}

type GetCustomerOrdersParams struct {
	Limit *int `form:"limit" json:"limit,omitempty"`
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) PostChat(ctx echo.Context) error {
	return w.Handler.PostChat(ctx)
}

func (w *ServerInterfaceWrapper) GetUser(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetUser(ctx, id)
}

func (w *ServerInterfaceWrapper) GetSession(ctx echo.Context) error {
	userID, err := bindPathID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.GetSession(ctx, userID)
}

func (w *ServerInterfaceWrapper) GetCustomerOrders(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}

	var params GetCustomerOrdersParams
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetCustomerOrders(ctx, id, params)
}

func bindPathID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts the API under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/chat", wrapper.PostChat)
	router.GET(baseURL+"/user/:id", wrapper.GetUser)
	router.GET(baseURL+"/sessions/:userId", wrapper.GetSession)
	router.GET(baseURL+"/customers/:id/orders", wrapper.GetCustomerOrders)
}
