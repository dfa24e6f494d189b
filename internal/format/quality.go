package format

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Container is one of the file envelopes a quality level can be chosen for.
type Container string

const (
	ContainerWAV  Container = "wav"
	ContainerMP3  Container = "mp3"
	ContainerOGG  Container = "ogg"
	ContainerWebM Container = "webm"
)

// Defaults applied by Resolve when the caller leaves a value unset.
const (
	DefaultContainer = ContainerWAV
	DefaultQuality   = 0
)

// Containers lists the supported containers in display order.
var Containers = []Container{ContainerWAV, ContainerMP3, ContainerOGG, ContainerWebM}

func (c Container) String() string {
	return string(c)
}

// ParseContainer accepts a container name case-insensitively.
func ParseContainer(name string) (Container, error) {
	c := Container(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := qualityTable[c]; !ok {
		return "", fmt.Errorf("unknown container format %q: must be one of wav, mp3, ogg, webm", name)
	}
	return c, nil
}

// qualityTable is read-only after package init. Each container exposes only
// the levels it supports; ranges differ between containers.
var qualityTable = map[Container]map[int]AudioFormat{
	ContainerWAV: {
		-2: Riff8Khz16BitMonoPcm,
		-1: Riff16Khz16BitMonoPcm,
		0:  Riff24Khz16BitMonoPcm,
		1:  Riff24Khz16BitMonoPcm,
	},
	ContainerMP3: {
		-4: Audio16Khz32KBitRateMonoMp3,
		-3: Audio16Khz64KBitRateMonoMp3,
		-2: Audio16Khz128KBitRateMonoMp3,
		-1: Audio24Khz48KBitRateMonoMp3,
		0:  Audio24Khz96KBitRateMonoMp3,
		1:  Audio24Khz160KBitRateMonoMp3,
		2:  Audio48Khz96KBitRateMonoMp3,
		3:  Audio48Khz192KBitRateMonoMp3,
	},
	ContainerOGG: {
		-1: Ogg16Khz16BitMonoOpus,
		0:  Ogg24Khz16BitMonoOpus,
		1:  Ogg48Khz16BitMonoOpus,
	},
	ContainerWebM: {
		-1: Webm16Khz16BitMonoOpus,
		0:  Webm24Khz16BitMonoOpus,
		1:  Webm24Khz16Bit24KbpsMonoOpus,
	},
}

// ErrInvalidQuality is matched by every *QualityError.
var ErrInvalidQuality = errors.New("invalid quality")

// QualityError reports a quality level that has no mapping for a container.
type QualityError struct {
	Container Container
	Quality   int
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("invalid quality %d for container type %s (see list-qualities)", e.Quality, e.Container)
}

// Is makes errors.Is(err, ErrInvalidQuality) hold.
func (e *QualityError) Is(target error) bool {
	return target == ErrInvalidQuality
}

// Resolve picks the concrete format to request. An explicit format is
// returned unchanged and container/quality are ignored. Otherwise the
// container defaults to wav and the quality to 0, and the pair must match
// the quality table exactly.
//
// Resolve panics if container is not one of Containers: callers parse user
// input with ParseContainer first.
func Resolve(explicit *AudioFormat, container *Container, quality *int) (AudioFormat, error) {
	if explicit != nil {
		return *explicit, nil
	}

	c := DefaultContainer
	if container != nil {
		c = *container
	}
	q := DefaultQuality
	if quality != nil {
		q = *quality
	}

	levels, ok := qualityTable[c]
	if !ok {
		panic(fmt.Sprintf("format: container %q missing from quality table", c))
	}
	f, ok := levels[q]
	if !ok {
		return "", &QualityError{Container: c, Quality: q}
	}
	return f, nil
}

// Quality is one row of the quality table.
type Quality struct {
	Level  int
	Format AudioFormat
}

// Qualities returns the levels supported by c, lowest first.
func Qualities(c Container) []Quality {
	levels := qualityTable[c]
	out := make([]Quality, 0, len(levels))
	for level, f := range levels {
		out = append(out, Quality{Level: level, Format: f})
	}
	slices.SortFunc(out, func(a, b Quality) int { return a.Level - b.Level })
	return out
}
