package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func writeSnapshot(dir, name string, html []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.html", name, time.Now().Format("20060102_150405"))

	return os.WriteFile(filepath.Join(dir, filename), html, 0o644)
}
