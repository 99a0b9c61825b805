package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Faultbox/skinlab/internal/asset"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 1x2 bottom-up: first stored row is the bottom one.
	data := tgaHeader(TGATypeUncompressed, 1, 2, 24, 0)
	data = append(data,
		0, 0, 255, // red (BGR)
		255, 0, 0, // blue
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1 top-down, 32 bpp: a run of two green pixels then one raw white.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 255, 0, 128,
		0x00, 255, 255, 255, 255,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)
	want := []color.RGBA{{0, 255, 0, 128}, {0, 255, 0, 128}, {255, 255, 255, 255}}
	for x, w := range want {
		if got := rgba.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"grayscale type", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path, mime, want string
	}{
		{"skin.png", "", "png"},
		{"SKIN.JPG", "", "jpeg"},
		{"", "image/jpeg", "jpeg"},
		{"face.tga", "", "tga"},
		{"", "image/x-tga", "tga"},
		{"a.bmp", "", "bmp"},
		{"a.webp", "", "webp"},
		{"noext", "", ""},
		// MIME wins over a misleading extension.
		{"a.png", "image/webp", "webp"},
	}
	for _, tt := range tests {
		if got := Format(tt.path, tt.mime); got != tt.want {
			t.Errorf("Format(%q, %q) = %q, want %q", tt.path, tt.mime, got, tt.want)
		}
	}
}

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeSniffsPNG(t *testing.T) {
	img, err := Decode(pngBytes(t, color.RGBA{10, 20, 30, 255}), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", got)
	}

	if _, err := Decode([]byte("not an image"), "x.png", ""); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestImageToRGBAOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 4})
	got := ImageToRGBA(src)
	if got.Bounds().Min != (image.Point{}) || got.RGBAAt(0, 0) != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("bounds %v, origin pixel %v", got.Bounds(), got.RGBAAt(0, 0))
	}
}

func newTestCache(files map[string][]byte) (*Cache, *int) {
	uploads := 0
	c := NewCache("/models")
	c.upload = func(*image.RGBA) uint32 {
		uploads++
		return uint32(uploads)
	}
	c.readFile = func(path string) ([]byte, error) {
		if data, ok := files[path]; ok {
			return data, nil
		}
		return nil, errors.New("not found")
	}
	return c, &uploads
}

func TestCache(t *testing.T) {
	red := pngBytes(t, color.RGBA{255, 0, 0, 255})
	c, uploads := newTestCache(map[string][]byte{"/models/skin.png": red})

	if id := c.Get(asset.TextureRef{}); id != 0 {
		t.Errorf("empty ref = %d, want 0", id)
	}

	first := c.Get(asset.TextureRef{Path: "skin.png"})
	again := c.Get(asset.TextureRef{Path: "./skin.png"})
	if first == 0 || first != again || *uploads != 1 {
		t.Errorf("path ref: first %d, again %d, uploads %d", first, again, *uploads)
	}

	inline := c.Get(asset.TextureRef{Data: red, MimeType: "image/png"})
	if inline == 0 || inline == first || *uploads != 2 {
		t.Errorf("inline ref: %d, uploads %d", inline, *uploads)
	}
	if c.Get(asset.TextureRef{Data: red}) != inline {
		t.Error("identical inline data should share a handle")
	}

	if id := c.Get(asset.TextureRef{Path: "missing.png"}); id != 0 {
		t.Errorf("missing texture = %d, want 0", id)
	}
	if c.Len() != 3 || *uploads != 2 {
		t.Errorf("Len %d, uploads %d", c.Len(), *uploads)
	}
}
