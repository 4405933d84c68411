package courseValidator

import (
	"mime/multipart"
	"strings"

	"educa/middleware"
	courseModels "educa/models/course"
	"educa/validators"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize bounds file and image uploads
const MaxUploadSize = 20 << 20

// ContentForm holds the fields of every item kind; only those of the
// resolved kind are read.
type ContentForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
	URL     string `form:"url"`
	Upload  *multipart.FileHeader
	// MIME is the sniffed type of Upload
	MIME string
}

// ResolveItemKind maps the model_name route parameter onto an item kind.
// Names outside the closed set are answered with 404.
func ResolveItemKind() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := courseModels.ParseItemKind(c.Params("model_name"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found.", nil)
		}
		c.Locals("itemKind", kind)
		return c.Next()
	}
}

// ContentFormValidator validates the item form for the kind in "itemKind".
// Uploads are mandatory only when creating, i.e. when "itemID" is unset.
func ContentFormValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, _ := c.Locals("itemKind").(courseModels.ItemKind)
		_, editing := c.Locals("itemID").(uint)

		form := &ContentForm{
			Title:   strings.TrimSpace(c.FormValue("title")),
			Content: strings.TrimSpace(c.FormValue("content")),
			URL:     strings.TrimSpace(c.FormValue("url")),
		}
		errs := make(map[string]string)

		if msg := validators.Var(form.Title, "required,max=250"); msg != "" {
			errs["title"] = msg
		}

		switch kind {
		case courseModels.KindText:
			if msg := validators.Var(form.Content, "required"); msg != "" {
				errs["content"] = msg
			}
		case courseModels.KindVideo:
			if msg := validators.Var(form.URL, "required,http_url,max=200"); msg != "" {
				errs["url"] = msg
			}
		case courseModels.KindFile, courseModels.KindImage:
			upload, err := c.FormFile("file")
			switch {
			case err != nil && !editing:
				errs["file"] = "This field is required."
			case err == nil:
				mime, msg := sniffUpload(upload, kind)
				if msg != "" {
					errs["file"] = msg
				} else {
					form.Upload = upload
					form.MIME = mime
				}
			}
		}

		c.Locals("contentForm", form)
		c.Locals("formErrors", errs)
		return c.Next()
	}
}

func sniffUpload(upload *multipart.FileHeader, kind courseModels.ItemKind) (string, string) {
	if upload.Size == 0 {
		return "", "The submitted file is empty."
	}
	if upload.Size > MaxUploadSize {
		return "", "The submitted file is too large."
	}

	f, err := upload.Open()
	if err != nil {
		return "", "The submitted file could not be read."
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return "", "The submitted file could not be read."
	}
	if kind == courseModels.KindImage && !strings.HasPrefix(mime.String(), "image/") {
		return "", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}
	return mime.String(), ""
}
