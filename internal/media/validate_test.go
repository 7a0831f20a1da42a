package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		data := encodePNG(t, 8, 6)
		got, err := Validate(Upload{Reader: bytes.NewReader(data), Size: int64(len(data))}, 0, 0)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if got.ContentType != "image/png" || got.Width != 8 || got.Height != 6 {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("content type follows decoded format not declared header", func(t *testing.T) {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
			t.Fatalf("encode jpeg: %v", err)
		}
		got, err := Validate(Upload{Reader: &buf, Size: int64(buf.Len()), ContentType: "image/png"}, 0, 0)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if got.ContentType != "image/jpeg" {
			t.Fatalf("expected image/jpeg, got %s", got.ContentType)
		}
	})

	t.Run("oversized payload rejected", func(t *testing.T) {
		data := encodePNG(t, 8, 8)
		if _, err := Validate(Upload{Reader: bytes.NewReader(data), Size: int64(len(data))}, 10, 0); err == nil {
			t.Fatal("expected size rejection")
		}
	})

	t.Run("oversized dimensions rejected", func(t *testing.T) {
		data := encodePNG(t, 64, 4)
		if _, err := Validate(Upload{Reader: bytes.NewReader(data), Size: int64(len(data))}, 0, 32); err == nil {
			t.Fatal("expected dimension rejection")
		}
	})

	t.Run("non-image rejected", func(t *testing.T) {
		if _, err := Validate(Upload{Reader: bytes.NewReader([]byte("plain text")), Size: 10}, 0, 0); err == nil {
			t.Fatal("expected decode failure")
		}
	})

	t.Run("empty reader rejected", func(t *testing.T) {
		if _, err := Validate(Upload{}, 0, 0); err == nil {
			t.Fatal("expected empty reader failure")
		}
	})
}
