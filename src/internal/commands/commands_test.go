package commands

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/hashing"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

func init() {
	log.DisableLogs()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func runCommand(t *testing.T, cmd Runner, ctx *AppContext, args ...string) error {
	t.Helper()
	if err := cmd.Init(args, ctx); err != nil {
		return err
	}
	return cmd.Run()
}

const sampleInput = "103.20.199.122:443#🇯🇵日本24\n103.20.199.122 443\n8.8.8.8,53\nbad line\n"

func TestNormalizeCommand_OutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "result.txt")
	writeFile(t, input, sampleInput)

	ctx := &AppContext{ConfigPath: DefaultConfigPath}
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress", "-o", out, input); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if got := readFile(t, out); got != "8.8.8.8 53\n103.20.199.122 443" {
		t.Errorf("output = %q", got)
	}
}

func TestNormalizeCommand_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "proxies.csv")
	writeFile(t, input, "\"1.2.3.4\",\"80\"\n")

	ctx := &AppContext{ConfigPath: DefaultConfigPath}
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress", input); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "proxies_processed.txt")); got != "1.2.3.4 80" {
		t.Errorf("output = %q", got)
	}
}

func TestNormalizeCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "10.0.0.1:80\n2.0.0.1 8080\n")
	writeFile(t, b, "2.0.0.1:80#x\n10.0.0.1 80\n192.168.1.1:22\n")

	var stdout bytes.Buffer
	ctx := &AppContext{ConfigPath: DefaultConfigPath, Stdout: &stdout}
	err := runCommand(t, CreateNormalizeCommand(), ctx,
		"-o", "-", "-exclude", "192.168.0.0/16", "-template", "{{ip}}:{{port}}", a, b)
	defer log.SetForceStdErr(false)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	want := "2.0.0.1:80\n2.0.0.1:8080\n10.0.0.1:80\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestNormalizeCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "list.txt"), "1.1.1.1:53\n")
	configPath := filepath.Join(dir, "ipnorm.toml")
	writeFile(t, configPath, `
[general]
output_file = "out/result.txt"
write_checksum = true

[[source]]
name = "local"
file = "list.txt"

[[source]]
name = "inline"
hosts = ["8.8.8.8 53", "1.1.1.1 53"]
`)

	ctx := &AppContext{ConfigPath: configPath}
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress"); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	out := filepath.Join(dir, "out", "result.txt")
	got := readFile(t, out)
	if got != "1.1.1.1 53\n8.8.8.8 53" {
		t.Errorf("output = %q", got)
	}
	if sum := readFile(t, hashing.SidecarPath(out)); sum != hashing.Sum([]byte(got)) {
		t.Errorf("checksum = %q", sum)
	}
}

func TestNormalizeCommand_SkipStandard(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "std.txt")
	out := filepath.Join(dir, "out.txt")
	// already standard, deliberately unsorted with a duplicate
	content := "9.9.9.9 53\n1.1.1.1 53\n1.1.1.1 53\n"
	writeFile(t, input, content)

	ctx := &AppContext{ConfigPath: DefaultConfigPath}
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress", "-skip-standard", "-o", out, input); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got := readFile(t, out); got != content {
		t.Errorf("output = %q, want input copied unchanged", got)
	}
}

func TestNormalizeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	writeFile(t, empty, "\n\n")
	input := filepath.Join(dir, "input.txt")
	writeFile(t, input, sampleInput)

	tests := []struct {
		name string
		args []string
	}{
		{"Empty input", []string{"-no-progress", "-o", filepath.Join(dir, "o1.txt"), empty}},
		{"Missing input", []string{"-no-progress", filepath.Join(dir, "missing.txt")}},
		{"Bad exclude", []string{"-no-progress", "-exclude", "nope", input}},
		{"Bad template", []string{"-no-progress", "-template", "{{host}}", input}},
		{"Upload without config", []string{"-no-progress", "-upload", input}},
		{"Store without config", []string{"-no-progress", "-store", input}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &AppContext{ConfigPath: DefaultConfigPath}
			if err := runCommand(t, CreateNormalizeCommand(), ctx, tt.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestNormalizeCommand_Upload(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		body = buf.String()
	}))
	defer server.Close()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "list.txt"), "1.2.3.4:80#JP\n5.6.7.8 443\n")
	configPath := filepath.Join(dir, "ipnorm.toml")
	writeFile(t, configPath, `
[general]
output_file = "result.txt"

[upload]
url = "`+server.URL+`"
token = "secret"

[[source]]
name = "local"
file = "list.txt"
`)

	ctx := &AppContext{ConfigPath: configPath}
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress", "-upload"); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if body != "1.2.3.4:80#JP\n5.6.7.8:443#Unknown" {
		t.Errorf("uploaded body = %q", body)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	std := filepath.Join(dir, "std.txt")
	raw := filepath.Join(dir, "raw.txt")
	writeFile(t, std, "1.1.1.1 53\n8.8.8.8 53\n")
	writeFile(t, raw, sampleInput)

	var stdout bytes.Buffer
	ctx := &AppContext{ConfigPath: DefaultConfigPath, Stdout: &stdout}

	if err := runCommand(t, CreateCheckCommand(), ctx, std); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "std.txt: standard format") {
		t.Errorf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	if err := runCommand(t, CreateCheckCommand(), ctx, raw); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "raw.txt: not in standard format") {
		t.Errorf("stdout = %q", stdout.String())
	}

	if err := CreateCheckCommand().Init(nil, ctx); err == nil {
		t.Error("Expected error without a file argument")
	}
}

func TestDownloadCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1.2.3.4:80\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "ipnorm.toml")
	writeFile(t, configPath, `
[general]
downloaded_lists_dir = "cache"

[[source]]
name = "feed"
url = "`+server.URL+`/feed.txt"
`)

	ctx := &AppContext{ConfigPath: configPath}
	if err := runCommand(t, CreateDownloadCommand(), ctx); err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "cache", "feed.lst")); got != "1.2.3.4:80\n" {
		t.Errorf("downloaded = %q", got)
	}

	out := filepath.Join(dir, "out.txt")
	if err := runCommand(t, CreateNormalizeCommand(), ctx, "-no-progress", "-o", out); err != nil {
		t.Fatalf("normalize after download failed: %v", err)
	}
	if got := readFile(t, out); got != "1.2.3.4 80" {
		t.Errorf("output = %q", got)
	}
}

func TestServeCommand_GracefulStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	cmd := CreateServeCommand()
	stop := make(chan struct{})
	cmd.stop = stop

	ctx := &AppContext{ConfigPath: DefaultConfigPath, Version: "test"}
	if err := cmd.Init([]string{"-listen", addr}, ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Run() }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/api/v1/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not come up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeCommand_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad exclude", "[filter]\nexclude = [\"10.0.0.0/33\"]\n", "filter.exclude"},
		{"negative body limit", "[api]\nmax_body_bytes = -1\n", "api.max_body_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "ipnorm.toml")
			writeFile(t, configPath, tt.content)

			err := CreateServeCommand().Init(nil, &AppContext{ConfigPath: configPath})
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !IsConfigError(err) {
				t.Errorf("Expected a configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected %s in error, got %v", tt.field, err)
			}
		})
	}
}

func TestDownloadCommand_RejectsNameOutsideListsDir(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "ipnorm.toml")
	writeFile(t, configPath, `
[[source]]
name = "../../escape"
url = "https://example.com/feed.txt"
`)

	err := CreateDownloadCommand().Init(nil, &AppContext{ConfigPath: configPath})
	if err == nil || !IsConfigError(err) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("Expected the name field in error, got %v", err)
	}
}

func TestIsConfigError(t *testing.T) {
	_, err := loadAndValidateConfigOrFail(filepath.Join(t.TempDir(), "missing.toml"))
	if !IsConfigError(err) {
		t.Errorf("Expected missing file to be a configuration error, got %v", err)
	}
	if IsConfigError(os.ErrNotExist) {
		t.Error("Plain errors must not be reported as configuration errors")
	}
}
