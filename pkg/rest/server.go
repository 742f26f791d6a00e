package rest

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Handler = func() (interface{}, error)

// PostHandler receives the raw request body and returns the response
// object together with the status code to answer with. A returned error
// becomes a JSON error body under that same status code.
type PostHandler = func(body []byte) (interface{}, int, error)

type RESTServerOptions struct {
	Port int
}

type RESTServer struct {
	port   int
	server *fiber.App
}

func NewServer(opts *RESTServerOptions) *RESTServer {
	r := RESTServer{
		port:   opts.Port,
		server: fiber.New(),
	}

	return &r
}

func (r *RESTServer) Run() error {
	return r.server.Listen(":" + fmt.Sprint(r.port))
}

func (r *RESTServer) Shutdown() error {
	return r.server.Shutdown()
}

func (r *RESTServer) Get(route string, fn Handler) {
	r.server.Get(route, func(c *fiber.Ctx) error {
		o, err := fn()
		if err != nil {
			return err
		}

		c.Context().SetContentType("application/json")
		data, err := json.Marshal(o)
		if err != nil {
			return err
		}

		return c.Send([]byte(data))
	})
}

func (r *RESTServer) Post(route string, fn PostHandler) {
	r.server.Post(route, func(c *fiber.Ctx) error {
		o, status, err := fn(c.Body())

		c.Context().SetContentType("application/json")

		if err != nil {
			if status == 0 {
				status = fiber.StatusInternalServerError
			}

			data, merr := json.Marshal(map[string]string{"error": err.Error()})
			if merr != nil {
				return merr
			}

			return c.Status(status).Send(data)
		}

		data, err := json.Marshal(o)
		if err != nil {
			return err
		}

		if status == 0 {
			status = fiber.StatusOK
		}

		return c.Status(status).Send(data)
	})
}
