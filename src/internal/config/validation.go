package config

import (
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "hostname_port":
		return "must be in format 'host:port'"
	case "cidr_list":
		return "must contain only IPv4 addresses or CIDRs (e.g. 10.0.0.0/8)"
	case "output_template":
		return fmt.Sprintf("must be a valid template using only {{%s}}, {{%s}}, {{%s}} and {{%s}}", TmplIP, TmplPort, TmplTag, TmplCanonical)
	case "encoding":
		return fmt.Sprintf("must be one of: %s, %s, %s", EncodingUTF8, EncodingGBK, EncodingAuto)
	case "http_url_or_empty":
		return "must be an http:// or https:// URL or empty"
	case "source_name":
		return "must not contain path separators or be '.' or '..'"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For sources: the name of the source (e.g., "feed")
	FieldPath string // Dot-notation field path (e.g., "general.output_template")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("cidr_list", validateCIDRList); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("output_template", validateOutputTemplate); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("encoding", validateEncoding); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("http_url_or_empty", validateHTTPURLOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("source_name", validateSourceName); err != nil {
		panic(err)
	}

	// Report field names as they appear in the TOML file
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ParseNetwork accepts "a.b.c.d" or "a.b.c.d/n" and returns an IPv4 prefix.
func ParseNetwork(value string) (netip.Prefix, error) {
	value = strings.TrimSpace(value)
	if !strings.Contains(value, "/") {
		value += "/32"
	}
	prefix, err := netip.ParsePrefix(value)
	if err != nil {
		return netip.Prefix{}, err
	}
	if !prefix.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("not an IPv4 network: %s", value)
	}
	return prefix.Masked(), nil
}

func validateCIDRList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if _, err := ParseNetwork(field.Index(i).String()); err != nil {
			return false
		}
	}
	return true
}

// ValidateOutputTemplate checks that the template parses and only uses known variables.
func ValidateOutputTemplate(tmpl string) error {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return err
	}

	var unknown []string
	t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case TmplIP, TmplPort, TmplTag, TmplCanonical:
		default:
			unknown = append(unknown, tag)
		}
		return 0, nil
	})
	if len(unknown) > 0 {
		return fmt.Errorf("unknown template variables: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func validateOutputTemplate(fl validator.FieldLevel) bool {
	return ValidateOutputTemplate(fl.Field().String()) == nil
}

func validateEncoding(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case EncodingUTF8, EncodingGBK, EncodingAuto:
		return true
	default:
		return false
	}
}

func validateHTTPURLOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateSourceName keeps downloaded files inside downloaded_lists_dir.
func validateSourceName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
