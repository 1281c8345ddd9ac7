package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/automoto/skelly/systems"
)

// LevelEntry is one selectable level in the list.
type LevelEntry struct {
	Path  string
	Name  string
	Thumb *ebiten.Image
}

// LevelSelectUI holds the ebitenui interface for the level select
// screen: the level list on the left, a map preview on the right.
type LevelSelectUI struct {
	UI *ebitenui.UI

	// Called with the entry index when a row is clicked.
	OnChoose func(index int)

	entries    []LevelEntry
	rowButtons []*widget.Button
	preview    *widget.Graphic
	starsLabel *widget.Label
	blankThumb *ebiten.Image

	normalFace text.Face
	smallFace  text.Face

	selected    int
	initialized bool
}

// NewLevelSelectUI creates the level select UI over the given entries.
func NewLevelSelectUI(entries []LevelEntry, onChoose func(int)) *LevelSelectUI {
	lsui := &LevelSelectUI{
		entries:  entries,
		OnChoose: onChoose,
	}

	lsui.loadFonts()
	lsui.buildUI()

	return lsui
}

func (lsui *LevelSelectUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	// Small sizes to fit the 320x180 screen.
	lsui.normalFace = &text.GoTextFace{
		Source: fontSource,
		Size:   10,
	}
	lsui.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   8,
	}
}

func (lsui *LevelSelectUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	// Side by side: the list, then the preview. Top padding leaves room
	// for the title the scene draws itself.
	padding := widget.Insets{Top: 28, Bottom: 8, Left: 12, Right: 12}
	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	contentContainer.AddChild(lsui.buildListContainer())
	contentContainer.AddChild(lsui.buildPreviewContainer())

	rootContainer.AddChild(contentContainer)

	lsui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
	// Note: Don't call UpdateUI() here - widgets aren't validated yet
}

func (lsui *LevelSelectUI) buildListContainer() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	lsui.rowButtons = make([]*widget.Button, len(lsui.entries))
	for i, entry := range lsui.entries {
		idx := i // Capture for closure
		row := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(150, 14),
			),
			widget.ButtonOpts.Image(lsui.rowImage()),
			widget.ButtonOpts.Text("  "+entry.Name, &lsui.normalFace, &widget.ButtonTextColor{
				Idle:    color.RGBA{200, 200, 200, 255},
				Hover:   color.RGBA{255, 255, 200, 255},
				Pressed: color.RGBA{150, 150, 150, 255},
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if lsui.OnChoose != nil {
					lsui.OnChoose(idx)
				}
			}),
		)
		lsui.rowButtons[i] = row
		container.AddChild(row)
	}

	return container
}

func (lsui *LevelSelectUI) buildPreviewContainer() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	lsui.blankThumb = ebiten.NewImage(96, 54)
	lsui.blankThumb.Fill(color.RGBA{40, 40, 50, 255})

	thumb := lsui.blankThumb
	if len(lsui.entries) > 0 && lsui.entries[0].Thumb != nil {
		thumb = lsui.entries[0].Thumb
	}
	lsui.preview = widget.NewGraphic(
		widget.GraphicOpts.Image(thumb),
	)
	container.AddChild(lsui.preview)

	lsui.starsLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &lsui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 100, 255},
		}),
	)
	container.AddChild(lsui.starsLabel)

	return container
}

func (lsui *LevelSelectUI) rowImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(color.RGBA{30, 30, 42, 255})
	hover := image.NewNineSliceColor(color.RGBA{50, 50, 66, 255})
	pressed := image.NewNineSliceColor(color.RGBA{24, 24, 34, 255})

	return &widget.ButtonImage{
		Idle:    idle,
		Hover:   hover,
		Pressed: pressed,
	}
}

// SetSelected moves the keyboard cursor and refreshes the preview pane.
func (lsui *LevelSelectUI) SetSelected(index int) {
	if index < 0 || index >= len(lsui.entries) {
		return
	}
	lsui.selected = index

	for i, button := range lsui.rowButtons {
		if textWidget := button.Text(); textWidget != nil {
			cursor := "  "
			if i == index {
				cursor = "> "
			}
			textWidget.Label = cursor + lsui.entries[i].Name
		}
	}

	entry := lsui.entries[index]
	if entry.Thumb != nil {
		lsui.preview.Image = entry.Thumb
	} else {
		lsui.preview.Image = lsui.blankThumb
	}
	lsui.starsLabel.Label = fmt.Sprintf("Stars: %d", systems.StarsForLevel(entry.Path))
}

// Selected returns the index the cursor is on.
func (lsui *LevelSelectUI) Selected() int {
	return lsui.selected
}

// Update calls the UI's Update method
func (lsui *LevelSelectUI) Update() {
	lsui.UI.Update()
	// Refresh state on first frame after widgets are validated
	if !lsui.initialized {
		lsui.initialized = true
		lsui.SetSelected(lsui.selected)
	}
}
