package output

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/ipnorm/src/internal/collector"
	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
)

// Render formats every endpoint of the result with tmpl and joins the lines
// with '\n'. There is no trailing newline.
func Render(result *collector.Result, tmpl string) ([]byte, error) {
	if tmpl == "" {
		tmpl = config.DefaultOutputTemplate
	}
	if err := config.ValidateOutputTemplate(tmpl); err != nil {
		return nil, errors.NewOutputError("invalid output template", err)
	}

	t := fasttemplate.New(tmpl, "{{", "}}")
	var buf bytes.Buffer
	for i, ep := range result.Endpoints {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if _, err := t.ExecuteFunc(&buf, tagFunc(ep)); err != nil {
			return nil, errors.NewOutputError("failed to render endpoint "+ep.String(), err)
		}
	}
	return buf.Bytes(), nil
}

func tagFunc(ep endpoint.Endpoint) fasttemplate.TagFunc {
	return func(w io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case config.TmplIP:
			return io.WriteString(w, ep.Addr().String())
		case config.TmplPort:
			return io.WriteString(w, strconv.Itoa(int(ep.Port())))
		case config.TmplTag:
			return io.WriteString(w, ep.Tag)
		case config.TmplCanonical:
			return io.WriteString(w, ep.String())
		default:
			return 0, nil
		}
	}
}

// UploadLines formats endpoints as "ip:port#tag", using defaultTag for
// endpoints without one.
func UploadLines(result *collector.Result, defaultTag string) []string {
	if defaultTag == "" {
		defaultTag = config.DefaultUploadTag
	}
	lines := make([]string, len(result.Endpoints))
	for i, ep := range result.Endpoints {
		tag := ep.Tag
		if tag == "" {
			tag = defaultTag
		}
		lines[i] = ep.HostPort() + "#" + tag
	}
	return lines
}
