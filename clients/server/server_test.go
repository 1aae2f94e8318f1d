package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/generator"
	"github.com/xob0t/boothframe/pkg/layout"
	"github.com/xob0t/boothframe/pkg/preview"
	"github.com/xob0t/boothframe/pkg/source"
	"github.com/xob0t/boothframe/pkg/store/memory"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...func(*Server)) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	assets := memory.NewStore()
	loader := &source.Loader{Assets: assets, Log: logger}

	engine, err := compositor.New(compositor.Options{
		Now:    func() time.Time { return fixedNow },
		Log:    logger,
		Loader: loader,
	})
	if err != nil {
		t.Fatalf("compositor.New() failed: %v", err)
	}
	pv, err := preview.NewRenderer(loader, "", logger)
	if err != nil {
		t.Fatalf("preview.NewRenderer() failed: %v", err)
	}

	s := &Server{Engine: engine, Preview: pv, Assets: assets, Now: func() time.Time { return fixedNow }}
	for _, opt := range opts {
		opt(s)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, generator.NewSolidImage(16, 16, c)); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func dataURI(t *testing.T, c color.RGBA) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, c))
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCatalogs(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/layouts")
	if err != nil {
		t.Fatalf("GET layouts failed: %v", err)
	}
	defer resp.Body.Close()
	var layouts []layout.Layout
	if err := json.NewDecoder(resp.Body).Decode(&layouts); err != nil {
		t.Fatalf("decode layouts: %v", err)
	}
	if len(layouts) != 12 || layouts[0].ID != "A" {
		t.Errorf("got %d layouts, first %+v", len(layouts), layouts[0])
	}

	resp2, err := http.Get(ts.URL + "/api/filters")
	if err != nil {
		t.Fatalf("GET filters failed: %v", err)
	}
	defer resp2.Body.Close()
	var filters []string
	if err := json.NewDecoder(resp2.Body).Decode(&filters); err != nil {
		t.Fatalf("decode filters: %v", err)
	}
	if strings.Join(filters, ",") != "none,grayscale,sepia,vintage,cool" {
		t.Errorf("filters = %v", filters)
	}

	resp3, err := http.Get(ts.URL + "/api/frames")
	if err != nil {
		t.Fatalf("GET frames failed: %v", err)
	}
	defer resp3.Body.Close()
	var frames []map[string]any
	if err := json.NewDecoder(resp3.Body).Decode(&frames); err != nil {
		t.Fatalf("decode frames: %v", err)
	}
	if len(frames) == 0 {
		t.Error("frame catalog is empty")
	}
}

func TestRenderJPEG(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/render", compositor.Request{
		LayoutID:    "L",
		Images:      []string{dataURI(t, color.RGBA{0, 128, 0, 255})},
		BorderColor: "#000000",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("render should not be an attachment, got %q", cd)
	}
	img, err := jpeg.Decode(resp.Body)
	if err != nil {
		t.Fatalf("jpeg.Decode() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 600 {
		t.Errorf("size = %v", b)
	}
}

func TestExportAttachment(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/export", compositor.Request{
		LayoutID: "K",
		Images:   []string{dataURI(t, color.RGBA{255, 0, 0, 255})},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	want := fmt.Sprintf(`attachment; filename=photobooth_%d.jpg`, fixedNow.UnixMilli())
	if cd := resp.Header.Get("Content-Disposition"); cd != want {
		t.Errorf("Content-Disposition = %q, want %q", cd, want)
	}
}

func TestRenderStatusCodes(t *testing.T) {
	ts := newTestServer(t)
	img := dataURI(t, color.RGBA{0, 0, 255, 255})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown layout", compositor.Request{LayoutID: "Z", Images: []string{img}}, http.StatusNoContent},
		{"no images", compositor.Request{LayoutID: "A"}, http.StatusNoContent},
		{"unknown frame", compositor.Request{LayoutID: "A", Images: []string{img}, FrameID: "nope"}, http.StatusBadRequest},
		{"bad json", "not a request", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/render", tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/preview", compositor.Request{LayoutID: "E", FrameID: "film-frame"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}

	bad := postJSON(t, ts.URL+"/api/preview", compositor.Request{LayoutID: "Z"})
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown layout status = %d", bad.StatusCode)
	}
}

func upload(t *testing.T, url, name string, data []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile() failed: %v", err)
	}
	fw.Write(data)
	mw.Close()

	resp, err := http.Post(url+"/api/assets", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAssetLifecycle(t *testing.T) {
	ts := newTestServer(t)
	photo := pngBytes(t, color.RGBA{255, 255, 0, 255})

	resp := upload(t, ts.URL, "sunny.png", photo)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	id := created["id"]
	if created["handle"] != source.AssetScheme+id {
		t.Errorf("handle = %q", created["handle"])
	}

	// The handle renders like any other image source.
	render := postJSON(t, ts.URL+"/api/render", compositor.Request{LayoutID: "L", Images: []string{created["handle"]}})
	if render.StatusCode != http.StatusOK {
		t.Fatalf("render with asset handle: status = %d", render.StatusCode)
	}
	out, err := jpeg.Decode(render.Body)
	if err != nil {
		t.Fatalf("jpeg.Decode() failed: %v", err)
	}
	// Center of the single slot shows the yellow photo.
	r, g, b, _ := out.At(450, 290).RGBA()
	if r>>8 < 230 || g>>8 < 230 || b>>8 > 40 {
		t.Errorf("center pixel = (%d,%d,%d), want yellow", r>>8, g>>8, b>>8)
	}

	list, err := http.Get(ts.URL + "/api/assets")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defer list.Body.Close()
	var assets []map[string]any
	json.NewDecoder(list.Body).Decode(&assets)
	if len(assets) != 1 || assets[0]["name"] != "sunny.png" || assets[0]["mediaType"] != "image/png" {
		t.Errorf("list = %v", assets)
	}

	get, err := http.Get(ts.URL + "/api/assets/" + id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer get.Body.Close()
	if ct := get.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("asset Content-Type = %q", ct)
	}
	if got := get.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if _, _, err := image.Decode(get.Body); err != nil {
		t.Errorf("stored asset does not decode: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/assets/"+id, nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", del.StatusCode)
	}

	missing, err := http.Get(ts.URL + "/api/assets/" + id)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", missing.StatusCode)
	}
}

func TestUploadRejectsNonPhotos(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		data []byte
	}{
		{"notes.txt", []byte("hello")},
		{"x.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.domain)</script></svg>`)},
		{"fake.png", []byte("<html><script>alert(1)</script></html>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := upload(t, ts.URL, tt.name, tt.data)
			if resp.StatusCode != http.StatusUnsupportedMediaType {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
			}
		})
	}

	list, err := http.Get(ts.URL + "/api/assets")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defer list.Body.Close()
	var assets []map[string]any
	if err := json.NewDecoder(list.Body).Decode(&assets); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("rejected uploads were stored: %v", assets)
	}
}

func TestUploadDetectsTypeFromContent(t *testing.T) {
	ts := newTestServer(t)
	// PNG bytes under a misleading name are stored as PNG.
	resp := upload(t, ts.URL, "photo.svg", pngBytes(t, color.RGBA{0, 0, 0, 255}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	get, err := http.Get(ts.URL + "/api/assets/" + created["id"])
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer get.Body.Close()
	if ct := get.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	ts := newTestServer(t, func(s *Server) { s.MaxRequestBytes = 1024 })
	big := compositor.Request{
		LayoutID: "L",
		Images:   []string{"data:image/png;base64," + strings.Repeat("A", 4096)},
	}
	for _, path := range []string{"/api/render", "/api/export", "/api/preview"} {
		resp := postJSON(t, ts.URL+path, big)
		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Errorf("%s status = %d, want %d", path, resp.StatusCode, http.StatusRequestEntityTooLarge)
		}
	}

	// A small request still renders under the same limit.
	resp := postJSON(t, ts.URL+"/api/preview", compositor.Request{LayoutID: "A"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("small preview status = %d", resp.StatusCode)
	}
}
