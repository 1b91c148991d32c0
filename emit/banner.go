package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"colcss/misc"
)

// BannerValues are available to the output banner template.
type BannerValues struct {
	App     string
	Version string
	Source  string
	Time    time.Time
}

func newBannerValues(source string) BannerValues {
	return BannerValues{
		App:     misc.GetAppName(),
		Version: misc.GetVersion(),
		Source:  source,
		Time:    time.Now(),
	}
}

// ExpandBanner executes banner template. Empty template produces empty
// banner.
func ExpandBanner(field string, values BannerValues) (string, error) {
	if strings.TrimSpace(field) == "" {
		return "", nil
	}

	tmpl, err := template.New("banner").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse banner template: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand banner template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
