package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/go-mclib/hud/pkg/render"
)

var ErrMissingAsset = errors.New("missing item asset")

const (
	// IconWidth x IconHeight terminal cells; each cell shows two pixels
	// stacked with a half block.
	IconWidth  = 6
	IconHeight = 2

	upperHalf = "▀"
)

// Placeholder is the generic crate shown when an item icon cannot be loaded.
func Placeholder() render.Icon {
	box := lipgloss.NewStyle().Foreground(lipgloss.Color("#c8a165"))
	return render.Icon{
		Rows: []string{
			box.Render("┌─┬┬─┐"),
			box.Render("└─┴┴─┘"),
		},
		Placeholder: true,
	}
}

// Loader resolves item icons from items/<model>.png inside an fs.FS.
// Decoded icons are cached per model; failures are not cached so a later
// fetch of the asset pack can fill them in.
type Loader struct {
	fsys  fs.FS
	dir   string
	cache map[string]render.Icon
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, dir: "items", cache: make(map[string]render.Icon)}
}

// Resolve implements render.IconResolver.
func (l *Loader) Resolve(model string) (render.Icon, error) {
	if icon, ok := l.cache[model]; ok {
		return icon, nil
	}
	if l.fsys == nil || model == "" || strings.ContainsAny(model, `/\`) {
		return render.Icon{}, fmt.Errorf("%w: %q", ErrMissingAsset, model)
	}

	name := path.Join(l.dir, model+".png")
	f, err := l.fsys.Open(name)
	if err != nil {
		return render.Icon{}, fmt.Errorf("%w: %v", ErrMissingAsset, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return render.Icon{}, fmt.Errorf("%w: decode %s: %v", ErrMissingAsset, name, err)
	}

	icon := render.Icon{Model: model, Rows: Rasterize(img, IconWidth, IconHeight)}
	l.cache[model] = icon
	return icon, nil
}

// Rasterize scales img to width x (2*height) pixels and renders it as
// half-block terminal rows. Transparent pixels fall back to the terminal
// background.
func Rasterize(img image.Image, width, height int) []string {
	dst := image.NewRGBA(image.Rect(0, 0, width, height*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < width; x++ {
			top, topOK := pixel(dst, x, y*2)
			bottom, bottomOK := pixel(dst, x, y*2+1)

			style := lipgloss.NewStyle()
			glyph := " "
			if topOK {
				style = style.Foreground(lipgloss.Color(top.Hex()))
				glyph = upperHalf
			}
			if bottomOK {
				style = style.Background(lipgloss.Color(bottom.Hex()))
			}
			b.WriteString(style.Render(glyph))
		}
		rows[y] = b.String()
	}
	return rows
}

func pixel(img *image.RGBA, x, y int) (colorful.Color, bool) {
	c := img.RGBAAt(x, y)
	if c.A < 0x40 {
		return colorful.Color{}, false
	}
	col, _ := colorful.MakeColor(c)
	return col, true
}
