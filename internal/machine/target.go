package machine

import (
	"runtime"
	"slices"

	"tmplconfig/internal/floatfmt"
)

// Data models by (int, long, pointer) width; only int and long matter here.
func dataModel(name string, order ByteOrder, intSize, longSize int, ld floatfmt.Encoding, ldSize int) Description {
	return Description{
		Name:      name,
		ByteOrder: order,
		CharBits:  8,
		Signed:    TwosComplement,
		Charset:   "US-ASCII",
		Sizes: Sizes{
			Char:       1,
			Short:      2,
			Int:        intSize,
			Long:       longSize,
			LongLong:   8,
			Float:      4,
			Double:     8,
			LongDouble: ldSize,
		},
		Encodings: Encodings{
			Float:      floatfmt.Binary32,
			Double:     floatfmt.Binary64,
			LongDouble: ld,
		},
	}
}

func lp64(name string, order ByteOrder, ld floatfmt.Encoding, ldSize int) Description {
	return dataModel(name, order, 4, 8, ld, ldSize)
}

func ilp32(name string, order ByteOrder, ld floatfmt.Encoding, ldSize int) Description {
	return dataModel(name, order, 4, 4, ld, ldSize)
}

func llp64(name string, order ByteOrder, ld floatfmt.Encoding, ldSize int) Description {
	return dataModel(name, order, 4, 4, ld, ldSize)
}

func pdp11Unix() Description {
	d := dataModel("pdp11-unix", PDPEndian, 2, 4, floatfmt.None, 8)
	d.Sizes.LongLong = 0
	d.Encodings = Encodings{}
	return d
}

var builtinTargets = []Description{
	lp64("x86_64-linux-gnu", LittleEndian, floatfmt.X87, 16),
	ilp32("i386-linux-gnu", LittleEndian, floatfmt.X87, 12),
	llp64("x86_64-windows-msvc", LittleEndian, floatfmt.Binary64, 8),
	ilp32("i386-windows-msvc", LittleEndian, floatfmt.Binary64, 8),
	lp64("aarch64-linux-gnu", LittleEndian, floatfmt.Binary128, 16),
	lp64("aarch64-apple-darwin", LittleEndian, floatfmt.Binary64, 8),
	llp64("aarch64-windows-msvc", LittleEndian, floatfmt.Binary64, 8),
	ilp32("arm-linux-gnueabihf", LittleEndian, floatfmt.Binary64, 8),
	lp64("powerpc64le-linux-gnu", LittleEndian, floatfmt.DoubleDouble, 16),
	lp64("powerpc64-linux-gnu", BigEndian, floatfmt.DoubleDouble, 16),
	lp64("s390x-linux-gnu", BigEndian, floatfmt.Binary128, 16),
	ilp32("mips-linux-gnu", BigEndian, floatfmt.Binary64, 8),
	ilp32("mipsel-linux-gnu", LittleEndian, floatfmt.Binary64, 8),
	lp64("mips64-linux-gnuabi64", BigEndian, floatfmt.Binary128, 16),
	lp64("mips64el-linux-gnuabi64", LittleEndian, floatfmt.Binary128, 16),
	ilp32("m68k-linux-gnu", BigEndian, floatfmt.X87, 12),
	lp64("riscv64-linux-gnu", LittleEndian, floatfmt.Binary128, 16),
	lp64("loongarch64-linux-gnu", LittleEndian, floatfmt.Binary128, 16),
	ilp32("wasm32-wasi", LittleEndian, floatfmt.Binary128, 16),
	pdp11Unix(),
}

// Targets returns the built-in target descriptions in table order.
func Targets() []Description {
	return slices.Clone(builtinTargets)
}

// LookupTarget finds a built-in target by name.
func LookupTarget(name string) (Description, bool) {
	for _, d := range builtinTargets {
		if d.Name == name {
			return d, true
		}
	}
	return Description{}, false
}

// HostTarget returns the C data model of the platform the process runs on.
func HostTarget() Description {
	return targetFor(runtime.GOOS, runtime.GOARCH)
}

func targetFor(goos, goarch string) Description {
	name := ""
	switch goarch {
	case "amd64":
		name = "x86_64-linux-gnu"
		if goos == "windows" {
			name = "x86_64-windows-msvc"
		}
	case "386":
		name = "i386-linux-gnu"
		if goos == "windows" {
			name = "i386-windows-msvc"
		}
	case "arm64":
		switch goos {
		case "darwin", "ios":
			name = "aarch64-apple-darwin"
		case "windows":
			name = "aarch64-windows-msvc"
		default:
			name = "aarch64-linux-gnu"
		}
	case "arm":
		name = "arm-linux-gnueabihf"
	case "ppc64le":
		name = "powerpc64le-linux-gnu"
	case "ppc64":
		name = "powerpc64-linux-gnu"
	case "s390x":
		name = "s390x-linux-gnu"
	case "mips":
		name = "mips-linux-gnu"
	case "mipsle":
		name = "mipsel-linux-gnu"
	case "mips64":
		name = "mips64-linux-gnuabi64"
	case "mips64le":
		name = "mips64el-linux-gnuabi64"
	case "riscv64":
		name = "riscv64-linux-gnu"
	case "loong64":
		name = "loongarch64-linux-gnu"
	case "wasm":
		name = "wasm32-wasi"
	}
	if d, ok := LookupTarget(name); ok {
		return d
	}
	return lp64(goarch+"-"+goos, LittleEndian, floatfmt.None, 16)
}
