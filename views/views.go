// Package views embeds the html templates and renders content items
// into the fragments shown to students.
package views

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"educa/config"
	"educa/logger"
	"educa/middleware"
	courseModels "educa/models/course"
	"educa/utils"

	"github.com/gofiber/fiber/v2"
	fiberhtml "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// BaseLayout wraps every manage and account page
const BaseLayout = "layouts/base"

var (
	engine     *fiberhtml.Engine
	engineOnce sync.Once
)

// Engine returns the shared template engine
func Engine() *fiberhtml.Engine {
	engineOnce.Do(func() {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			panic(err)
		}
		engine = fiberhtml.NewFileSystem(http.FS(sub), ".html")
		engine.AddFuncMap(map[string]interface{}{
			"linebreaks": Linebreaks,
			"itemKinds":  func() []courseModels.ItemKind { return courseModels.ItemKinds },
			"add":        func(a, b int) int { return a + b },
		})
	})
	return engine
}

// Static serves the stylesheet the layout links under /static
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Linebreaks escapes text and turns blank-line separated blocks into
// paragraphs and single newlines into <br>.
func Linebreaks(text string) template.HTML {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}

	var b strings.Builder
	for i, para := range paragraphBreak.Split(text, -1) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}

// RenderItem renders the student-facing fragment of a content item
func RenderItem(item courseModels.Item) (template.HTML, error) {
	binding := map[string]interface{}{"Item": item}

	if video, ok := item.(*courseModels.Video); ok {
		binding["EmbedURL"] = utils.VideoEmbedURL(video.URL)
		if endpoint := config.AppConfig.OEmbedEndpoint; endpoint != "" {
			oembed, err := utils.FetchOEmbed(endpoint, video.URL)
			if err != nil {
				logger.Log.Warn("oembed lookup failed", zap.String("url", video.URL), zap.Error(err))
			} else {
				binding["Embed"] = template.HTML(oembed.HTML)
			}
		}
	}

	var buf bytes.Buffer
	if err := Engine().Render(&buf, "content/"+string(item.Kind()), binding); err != nil {
		return "", err
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// Page renders name inside the base layout. The CSRF token and the
// principal are added to data.
func Page(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CSRF"] = middleware.CSRFToken(c)
	if userID, ok := c.Locals("userId").(uint); ok {
		data["UserID"] = userID
	}
	return c.Render(name, data, BaseLayout)
}
