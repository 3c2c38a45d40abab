package productionlog

import (
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Register mounts the production log routes on r.
func Register(r fiber.Router, repo Repository) {
	r.Get("/production-logs", ListHandler(repo))
	r.Post("/production-logs", CreateHandler(repo))
	r.Get("/production-logs/export", ExportHandler(repo))
}

// GET /api/production-logs
func ListHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := repo.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}

// POST /api/production-logs
func CreateHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// an empty or non-JSON body is validated as an empty record
		var body CreateRequest
		if len(c.Body()) > 0 && c.Is("json") {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
			}
		}

		if err := body.Validate(); err != nil {
			return err
		}

		entry, err := body.ToModel()
		if err != nil {
			return err
		}

		if err := repo.Create(c.UserContext(), &entry); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// GET /api/production-logs/export
func ExportHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := repo.List(c.UserContext())
		if err != nil {
			return err
		}

		buf, err := WriteWorkbook(logs)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="production-logs.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
