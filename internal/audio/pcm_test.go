package audio

import (
	"encoding/base64"
	"math"
	"strings"
	"testing"
)

func pcm16Base64(samples ...int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		raw[2*i] = byte(uint16(s))
		raw[2*i+1] = byte(uint16(s) >> 8)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecodePCM16Normalization(t *testing.T) {
	clip, err := DecodePCM16(pcm16Base64(0, 16384, -16384, 32767))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 0.5, -0.5, 0.99997}
	if len(clip.Samples) != len(want) {
		t.Fatalf("samples = %d, want %d", len(clip.Samples), len(want))
	}
	for i, w := range want {
		if math.Abs(float64(clip.Samples[i])-w) > 1e-4 {
			t.Errorf("sample %d = %v, want ~%v", i, clip.Samples[i], w)
		}
	}
	if clip.SampleRate != 24000 || clip.Channels != 1 {
		t.Errorf("format = %d Hz x%d, want 24000 Hz mono", clip.SampleRate, clip.Channels)
	}
	if clip.Frames() != 4 {
		t.Errorf("frames = %d, want byteLen/2", clip.Frames())
	}
}

func TestDecodePCM16Rejections(t *testing.T) {
	tests := []struct {
		name string
		b64  string
	}{
		{"invalid base64", "!!not-base64!!"},
		{"empty payload", ""},
		{"odd byte count", base64.StdEncoding.EncodeToString([]byte{1, 2, 3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePCM16(tt.b64); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}

func TestEncodeWAVFraming(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := EncodeWAV(pcm, 24000, 1)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want header+data", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Errorf("missing RIFF/WAVE markers: %q %q", wav[0:4], wav[8:12])
	}
	if string(wav[36:40]) != "data" {
		t.Errorf("data chunk marker = %q", wav[36:40])
	}
	// chunk sizes, little-endian
	riffSize := uint32(wav[4]) | uint32(wav[5])<<8 | uint32(wav[6])<<16 | uint32(wav[7])<<24
	if riffSize != uint32(36+len(pcm)) {
		t.Errorf("riff size = %d", riffSize)
	}
	dataSize := uint32(wav[40]) | uint32(wav[41])<<8 | uint32(wav[42])<<16 | uint32(wav[43])<<24
	if dataSize != uint32(len(pcm)) {
		t.Errorf("data size = %d", dataSize)
	}
	sampleRate := uint32(wav[24]) | uint32(wav[25])<<8 | uint32(wav[26])<<16 | uint32(wav[27])<<24
	if sampleRate != 24000 {
		t.Errorf("sample rate = %d", sampleRate)
	}
	if !strings.Contains(string(wav[12:16]), "fmt") {
		t.Errorf("fmt chunk marker = %q", wav[12:16])
	}
	if got := wav[44:]; string(got) != string(pcm) {
		t.Errorf("pcm payload altered: %v", got)
	}
}

func TestClipDuration(t *testing.T) {
	clip := Clip{SampleRate: 24000, Channels: 1, Samples: make([]float32, 24000)}
	if d := clip.Duration(); d.Seconds() != 1 {
		t.Errorf("duration = %v, want 1s", d)
	}
}
