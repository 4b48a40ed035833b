package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/alkime/storyform/internal/notice"
	"github.com/alkime/storyform/internal/story"
	"github.com/gin-gonic/gin"
)

const maxRawHTMLBytes = 5 << 20 // 5MB

type categoryResponse struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

type metadataRequest struct {
	Title string `json:"title"`
}

type metadataResponse struct {
	MetaDescription string          `json:"meta_description"`
	MetaKeywords    string          `json:"meta_keywords"`
	FilterTags      string          `json:"filter_tags"`
	Cached          bool            `json:"cached"`
	Notices         []notice.Notice `json:"notices"`
}

func (s *Server) handleCategories(c *gin.Context) {
	names := story.Categories()
	out := make([]categoryResponse, 0, len(names))
	for _, name := range names {
		code, err := story.ParseCategory(name)
		if err != nil {
			continue
		}
		out = append(out, categoryResponse{Name: name, ID: int(code)})
	}

	c.JSON(http.StatusOK, out)
}

// handleMetadata drafts metadata for a title. Generation failures are reported as
// warnings with blank fields, never as an error status.
func (s *Server) handleMetadata(c *gin.Context) {
	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	notices := &notice.List{}
	cache := s.deps.Sessions.Get(sessionID(c))

	md, cached, err := cache.Generate(c.Request.Context(), s.deps.Metadata, req.Title)
	if err != nil {
		notices.Warn("Metadata generation failed: %v", err)
	}

	c.JSON(http.StatusOK, metadataResponse{
		MetaDescription: md.Description,
		MetaKeywords:    md.Keywords,
		FilterTags:      md.Tags,
		Cached:          cached,
		Notices:         emptyIfNil(notices.All()),
	})
}

func (s *Server) handleSubmitStory(c *gin.Context) {
	rawHTML, err := readRawHTML(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := story.Submission{
		Title:           c.PostForm("title"),
		MetaDescription: c.PostForm("meta_description"),
		MetaKeywords:    c.PostForm("meta_keywords"),
		ContentType:     c.PostForm("content_type"),
		Language:        c.PostForm("language"),
		ImageURL:        c.PostForm("image_url"),
		RawHTML:         rawHTML,
		Category:        c.PostForm("category"),
		FilterTags:      c.PostForm("filter_tags"),
		CustomCoverURL:  c.PostForm("cover_url"),
	}

	res, err := s.deps.Publisher.Submit(c.Request.Context(), sub)
	if err != nil {
		var verr *story.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    verr.Error(),
				"missing":  emptyIfNil(verr.Missing),
				"problems": emptyIfNil(verr.Problems),
			})
			return
		}

		s.logger.Error("Failed to publish story", "error", err, "title", sub.Title)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error processing HTML: %v", err)})
		return
	}

	c.Header("X-Story-Url", res.StoryURL)
	c.Header("X-Story-Html-Url", res.IDs.HostedURL)
	for _, n := range res.Notices {
		c.Writer.Header().Add("X-Story-Notice", headerSafe(n.String()))
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.ArchiveName}))
	c.Data(http.StatusOK, "application/zip", res.Archive)
}

// readRawHTML takes the uploaded raw_html file, or a raw_html text field when no file is sent.
func readRawHTML(c *gin.Context) (string, error) {
	fh, err := c.FormFile("raw_html")
	if errors.Is(err, http.ErrMissingFile) {
		return c.PostForm("raw_html"), nil
	}
	if err != nil {
		return "", fmt.Errorf("invalid form upload: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded HTML: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, maxRawHTMLBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded HTML: %w", err)
	}
	if len(body) > maxRawHTMLBytes {
		return "", fmt.Errorf("uploaded HTML larger than %d bytes", maxRawHTMLBytes)
	}

	return string(body), nil
}

// headerSafe strips characters that cannot appear in a header value.
func headerSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return ' '
		}
		return r
	}, s)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
