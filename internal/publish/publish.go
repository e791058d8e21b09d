package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions

	// HTML also writes an .html rendering next to each markdown file.
	HTML bool

	// ICS also writes agenda.ics stamped with Now (time.Now when zero).
	ICS bool
	Now time.Time

	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteAgenda writes agenda.md plus one page per meeting under meetings/.
func WriteAgenda(ms []model.Meeting, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	meetingsDir := filepath.Join(toDir, "meetings")
	if err := os.MkdirAll(meetingsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	var written []string
	emit := func(path, title, md string) error {
		if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
			return err
		}
		written = append(written, path)
		if !opt.HTML {
			return nil
		}
		page, err := RenderHTML(title, md)
		if err != nil {
			return err
		}
		htmlPath := strings.TrimSuffix(path, ".md") + ".html"
		if err := writeFile(htmlPath, page, opt.Overwrite); err != nil {
			return err
		}
		written = append(written, htmlPath)
		return nil
	}

	title := opt.Title
	if strings.TrimSpace(title) == "" {
		title = defaultAgendaTitle
	}
	if err := emit(filepath.Join(toDir, "agenda.md"), title, RenderAgendaMarkdown(ms, opt.RenderOptions)); err != nil {
		return WriteResult{}, err
	}

	if opt.ICS {
		now := opt.Now
		if now.IsZero() {
			now = time.Now()
		}
		b, err := RenderICS(ms, now)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(toDir, "agenda.ics")
		if err := writeFile(p, b, opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	// Stop on first error.
	for _, m := range ms {
		p := filepath.Join(meetingsDir, handoff.MeetingCode(m.ID)+".md")
		if err := emit(p, m.Title, RenderMeetingMarkdown(m)); err != nil {
			return WriteResult{}, err
		}
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
