// Package format describes the audio encodings the synthesis service can
// produce and resolves the user's container/quality choice to one of them.
package format

import (
	"fmt"
	"slices"
	"strings"
)

// AudioFormat is a fully specified output encoding, named the way the
// synthesis service expects it on the wire.
type AudioFormat string

const (
	AmrWb16000Hz                  AudioFormat = "amr-wb-16000hz"
	Audio16Khz16Bit32KbpsMonoOpus AudioFormat = "audio-16khz-16bit-32kbps-mono-opus"
	Audio16Khz32KBitRateMonoMp3   AudioFormat = "audio-16khz-32kbitrate-mono-mp3"
	Audio16Khz64KBitRateMonoMp3   AudioFormat = "audio-16khz-64kbitrate-mono-mp3"
	Audio16Khz128KBitRateMonoMp3  AudioFormat = "audio-16khz-128kbitrate-mono-mp3"
	Audio24Khz16Bit24KbpsMonoOpus AudioFormat = "audio-24khz-16bit-24kbps-mono-opus"
	Audio24Khz16Bit48KbpsMonoOpus AudioFormat = "audio-24khz-16bit-48kbps-mono-opus"
	Audio24Khz48KBitRateMonoMp3   AudioFormat = "audio-24khz-48kbitrate-mono-mp3"
	Audio24Khz96KBitRateMonoMp3   AudioFormat = "audio-24khz-96kbitrate-mono-mp3"
	Audio24Khz160KBitRateMonoMp3  AudioFormat = "audio-24khz-160kbitrate-mono-mp3"
	Audio48Khz96KBitRateMonoMp3   AudioFormat = "audio-48khz-96kbitrate-mono-mp3"
	Audio48Khz192KBitRateMonoMp3  AudioFormat = "audio-48khz-192kbitrate-mono-mp3"
	G72216Khz64Kbps               AudioFormat = "g722-16khz-64kbps"
	Ogg16Khz16BitMonoOpus         AudioFormat = "ogg-16khz-16bit-mono-opus"
	Ogg24Khz16BitMonoOpus         AudioFormat = "ogg-24khz-16bit-mono-opus"
	Ogg48Khz16BitMonoOpus         AudioFormat = "ogg-48khz-16bit-mono-opus"
	Raw8Khz8BitMonoALaw           AudioFormat = "raw-8khz-8bit-mono-alaw"
	Raw8Khz8BitMonoMULaw          AudioFormat = "raw-8khz-8bit-mono-mulaw"
	Raw8Khz16BitMonoPcm           AudioFormat = "raw-8khz-16bit-mono-pcm"
	Raw16Khz16BitMonoPcm          AudioFormat = "raw-16khz-16bit-mono-pcm"
	Raw16Khz16BitMonoTrueSilk     AudioFormat = "raw-16khz-16bit-mono-truesilk"
	Raw22050Hz16BitMonoPcm        AudioFormat = "raw-22050hz-16bit-mono-pcm"
	Raw24Khz16BitMonoPcm          AudioFormat = "raw-24khz-16bit-mono-pcm"
	Raw24Khz16BitMonoTrueSilk     AudioFormat = "raw-24khz-16bit-mono-truesilk"
	Raw44100Hz16BitMonoPcm        AudioFormat = "raw-44100hz-16bit-mono-pcm"
	Raw48Khz16BitMonoPcm          AudioFormat = "raw-48khz-16bit-mono-pcm"
	Riff8Khz8BitMonoALaw          AudioFormat = "riff-8khz-8bit-mono-alaw"
	Riff8Khz8BitMonoMULaw         AudioFormat = "riff-8khz-8bit-mono-mulaw"
	Riff8Khz16BitMonoPcm          AudioFormat = "riff-8khz-16bit-mono-pcm"
	Riff16Khz16BitMonoPcm         AudioFormat = "riff-16khz-16bit-mono-pcm"
	Riff22050Hz16BitMonoPcm       AudioFormat = "riff-22050hz-16bit-mono-pcm"
	Riff24Khz16BitMonoPcm         AudioFormat = "riff-24khz-16bit-mono-pcm"
	Riff44100Hz16BitMonoPcm       AudioFormat = "riff-44100hz-16bit-mono-pcm"
	Riff48Khz16BitMonoPcm         AudioFormat = "riff-48khz-16bit-mono-pcm"
	Webm16Khz16BitMonoOpus        AudioFormat = "webm-16khz-16bit-mono-opus"
	Webm24Khz16Bit24KbpsMonoOpus  AudioFormat = "webm-24khz-16bit-24kbps-mono-opus"
	Webm24Khz16BitMonoOpus        AudioFormat = "webm-24khz-16bit-mono-opus"
)

// Codec identifies how samples are encoded inside a format.
type Codec string

const (
	CodecPCM      Codec = "pcm"
	CodecALaw     Codec = "alaw"
	CodecMULaw    Codec = "mulaw"
	CodecMP3      Codec = "mp3"
	CodecOpus     Codec = "opus"
	CodecTrueSilk Codec = "truesilk"
	CodecAMR      Codec = "amr"
	CodecG722     Codec = "g722"
)

// Envelope is the byte-level wrapping of the samples. It is broader than
// Container: raw streams and telephony codecs have no file envelope.
type Envelope string

const (
	EnvelopeRIFF Envelope = "riff"
	EnvelopeMP3  Envelope = "mp3"
	EnvelopeOgg  Envelope = "ogg"
	EnvelopeWebM Envelope = "webm"
	EnvelopeRaw  Envelope = "raw"
)

// Info is the decoded description of an AudioFormat. BitDepth is zero for
// compressed codecs and BitRateKbps is zero when the service does not fix one.
type Info struct {
	Envelope    Envelope
	Codec       Codec
	SampleRate  int
	BitDepth    int
	Channels    int
	BitRateKbps int
}

var formatInfo = map[AudioFormat]Info{
	AmrWb16000Hz:                  {EnvelopeRaw, CodecAMR, 16000, 0, 1, 0},
	Audio16Khz16Bit32KbpsMonoOpus: {EnvelopeRaw, CodecOpus, 16000, 16, 1, 32},
	Audio16Khz32KBitRateMonoMp3:   {EnvelopeMP3, CodecMP3, 16000, 0, 1, 32},
	Audio16Khz64KBitRateMonoMp3:   {EnvelopeMP3, CodecMP3, 16000, 0, 1, 64},
	Audio16Khz128KBitRateMonoMp3:  {EnvelopeMP3, CodecMP3, 16000, 0, 1, 128},
	Audio24Khz16Bit24KbpsMonoOpus: {EnvelopeRaw, CodecOpus, 24000, 16, 1, 24},
	Audio24Khz16Bit48KbpsMonoOpus: {EnvelopeRaw, CodecOpus, 24000, 16, 1, 48},
	Audio24Khz48KBitRateMonoMp3:   {EnvelopeMP3, CodecMP3, 24000, 0, 1, 48},
	Audio24Khz96KBitRateMonoMp3:   {EnvelopeMP3, CodecMP3, 24000, 0, 1, 96},
	Audio24Khz160KBitRateMonoMp3:  {EnvelopeMP3, CodecMP3, 24000, 0, 1, 160},
	Audio48Khz96KBitRateMonoMp3:   {EnvelopeMP3, CodecMP3, 48000, 0, 1, 96},
	Audio48Khz192KBitRateMonoMp3:  {EnvelopeMP3, CodecMP3, 48000, 0, 1, 192},
	G72216Khz64Kbps:               {EnvelopeRaw, CodecG722, 16000, 0, 1, 64},
	Ogg16Khz16BitMonoOpus:         {EnvelopeOgg, CodecOpus, 16000, 16, 1, 0},
	Ogg24Khz16BitMonoOpus:         {EnvelopeOgg, CodecOpus, 24000, 16, 1, 0},
	Ogg48Khz16BitMonoOpus:         {EnvelopeOgg, CodecOpus, 48000, 16, 1, 0},
	Raw8Khz8BitMonoALaw:           {EnvelopeRaw, CodecALaw, 8000, 8, 1, 0},
	Raw8Khz8BitMonoMULaw:          {EnvelopeRaw, CodecMULaw, 8000, 8, 1, 0},
	Raw8Khz16BitMonoPcm:           {EnvelopeRaw, CodecPCM, 8000, 16, 1, 0},
	Raw16Khz16BitMonoPcm:          {EnvelopeRaw, CodecPCM, 16000, 16, 1, 0},
	Raw16Khz16BitMonoTrueSilk:     {EnvelopeRaw, CodecTrueSilk, 16000, 16, 1, 0},
	Raw22050Hz16BitMonoPcm:        {EnvelopeRaw, CodecPCM, 22050, 16, 1, 0},
	Raw24Khz16BitMonoPcm:          {EnvelopeRaw, CodecPCM, 24000, 16, 1, 0},
	Raw24Khz16BitMonoTrueSilk:     {EnvelopeRaw, CodecTrueSilk, 24000, 16, 1, 0},
	Raw44100Hz16BitMonoPcm:        {EnvelopeRaw, CodecPCM, 44100, 16, 1, 0},
	Raw48Khz16BitMonoPcm:          {EnvelopeRaw, CodecPCM, 48000, 16, 1, 0},
	Riff8Khz8BitMonoALaw:          {EnvelopeRIFF, CodecALaw, 8000, 8, 1, 0},
	Riff8Khz8BitMonoMULaw:         {EnvelopeRIFF, CodecMULaw, 8000, 8, 1, 0},
	Riff8Khz16BitMonoPcm:          {EnvelopeRIFF, CodecPCM, 8000, 16, 1, 0},
	Riff16Khz16BitMonoPcm:         {EnvelopeRIFF, CodecPCM, 16000, 16, 1, 0},
	Riff22050Hz16BitMonoPcm:       {EnvelopeRIFF, CodecPCM, 22050, 16, 1, 0},
	Riff24Khz16BitMonoPcm:         {EnvelopeRIFF, CodecPCM, 24000, 16, 1, 0},
	Riff44100Hz16BitMonoPcm:       {EnvelopeRIFF, CodecPCM, 44100, 16, 1, 0},
	Riff48Khz16BitMonoPcm:         {EnvelopeRIFF, CodecPCM, 48000, 16, 1, 0},
	Webm16Khz16BitMonoOpus:        {EnvelopeWebM, CodecOpus, 16000, 16, 1, 0},
	Webm24Khz16Bit24KbpsMonoOpus:  {EnvelopeWebM, CodecOpus, 24000, 16, 1, 24},
	Webm24Khz16BitMonoOpus:        {EnvelopeWebM, CodecOpus, 24000, 16, 1, 0},
}

func (f AudioFormat) String() string {
	return string(f)
}

// Info returns the decoded description of f. The second result is false for
// a value that is not one of the declared formats.
func (f AudioFormat) Info() (Info, bool) {
	info, ok := formatInfo[f]
	return info, ok
}

// Extension is the conventional file extension for f, without the dot.
func (f AudioFormat) Extension() string {
	info, ok := formatInfo[f]
	if !ok {
		return "bin"
	}
	switch info.Envelope {
	case EnvelopeRIFF:
		return "wav"
	case EnvelopeMP3:
		return "mp3"
	case EnvelopeOgg:
		return "ogg"
	case EnvelopeWebM:
		return "webm"
	}
	switch info.Codec {
	case CodecAMR:
		return "amr"
	case CodecOpus:
		return "opus"
	}
	return "raw"
}

// MIMEType is the content type used when uploading audio in format f.
func (f AudioFormat) MIMEType() string {
	switch f.Extension() {
	case "wav":
		return "audio/wav"
	case "mp3":
		return "audio/mpeg"
	case "ogg":
		return "audio/ogg"
	case "webm":
		return "audio/webm"
	case "amr":
		return "audio/amr"
	case "opus":
		return "audio/opus"
	}
	return "application/octet-stream"
}

// ParseAudioFormat accepts a wire name case-insensitively.
func ParseAudioFormat(name string) (AudioFormat, error) {
	f := AudioFormat(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := formatInfo[f]; !ok {
		return "", fmt.Errorf("unknown audio format %q (see list-formats)", name)
	}
	return f, nil
}

// AllFormats returns every known format sorted by wire name.
func AllFormats() []AudioFormat {
	out := make([]AudioFormat, 0, len(formatInfo))
	for f := range formatInfo {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
