package fixture

import (
	"errors"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
)

// FormPath is where the fixture serves the form.
const FormPath = "/form.html"

// Register mounts the form page on router.
func Register(router fiber.Router) {
	router.Get(FormPath, func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(formHTML)
	})
}

// New returns a fiber app serving only the form page.
func New() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "formcheck fixture",
		DisableStartupMessage: true,
	})
	Register(app)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(FormPath)
	})
	return app
}

// Server is a running fixture bound to a local address.
type Server struct {
	app *fiber.App
	ln  net.Listener
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves the
// form in the background.
func Start(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s := &Server{app: New(), ln: ln}
	go func() { _ = s.app.Listener(ln) }()
	return s, nil
}

// URL returns the absolute address of the form page.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String() + FormPath
}

// Close stops the server. The listener is closed directly as well, in case
// the serve goroutine has not picked it up yet.
func (s *Server) Close() error {
	err := s.app.Shutdown()
	if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		err = errors.Join(err, cerr)
	}
	return err
}
