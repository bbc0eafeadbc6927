package window

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/midiparams/internal/host"
)

// ============ CONTROLS TAB ============

// intControl is a slider bound to an integer parameter
type intControl struct {
	param   *host.IntParam
	slider  *widget.Slider
	readout *widget.Label
	shown   int
}

func (c *intControl) sync() {
	v := c.param.Value()
	if v == c.shown {
		return
	}
	c.shown = v
	c.slider.SetValue(float64(v))
	c.readout.SetText(strconv.Itoa(v))
}

func (mw *MainWindow) createControlsTab() fyne.CanvasObject {
	desc := mw.wb.Descriptor
	if len(desc.Pages) == 0 {
		return widget.NewLabel("No parameters")
	}

	content := container.NewVBox()
	for _, r := range layoutRows(desc, desc.Pages[0]) {
		cells := make([]fyne.CanvasObject, 0, len(r.params))
		for _, pd := range r.params {
			if obj := mw.createParamWidget(pd); obj != nil {
				cells = append(cells, obj)
			}
		}
		if len(cells) == 0 {
			continue
		}
		content.Add(container.NewGridWithColumns(len(cells), cells...))
		if r.divider {
			content.Add(widget.NewSeparator())
		}
	}
	return container.NewVScroll(content)
}

func (mw *MainWindow) createParamWidget(pd host.ParamDescriptor) fyne.CanvasObject {
	switch pd.Kind {
	case host.KindChoice:
		return mw.createChoiceWidget(pd)
	case host.KindInt:
		return mw.createIntWidget(pd)
	}
	return nil
}

func (mw *MainWindow) createChoiceWidget(pd host.ParamDescriptor) fyne.CanvasObject {
	choice, err := mw.wb.Params.Choice(pd.Name)
	if err != nil {
		mw.log.Error("failed to fetch choice parameter", "param", pd.Name, "error", err)
		return nil
	}

	labels := make([]string, 0, len(pd.Options))
	for _, o := range choice.Options() {
		labels = append(labels, o.Label)
	}

	sel := widget.NewSelect(labels, nil)
	sel.PlaceHolder = "(No devices)"
	if _, ok := choice.Selected(); ok {
		sel.SetSelectedIndex(choice.Value())
	}
	sel.OnChanged = func(string) {
		if mw.syncing {
			return
		}
		if err := mw.wb.Edit(pd.Name, sel.SelectedIndex()); err != nil {
			mw.log.Error("failed to apply parameter edit", "param", pd.Name, "error", err)
		}
		mw.refreshStatus()
	}
	mw.portSelect = sel

	label := widget.NewLabel(pd.Label)
	label.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewBorder(nil, nil, label, nil, sel)
}

func (mw *MainWindow) createIntWidget(pd host.ParamDescriptor) fyne.CanvasObject {
	param, err := mw.wb.Params.Int(pd.Name)
	if err != nil {
		mw.log.Error("failed to fetch integer parameter", "param", pd.Name, "error", err)
		return nil
	}

	c := &intControl{
		param:   param,
		slider:  widget.NewSlider(float64(pd.Min), float64(pd.Max)),
		readout: widget.NewLabel(strconv.Itoa(param.Value())),
		shown:   param.Value(),
	}
	c.slider.Step = 1
	c.slider.SetValue(float64(c.shown))
	c.slider.OnChanged = func(v float64) {
		if mw.syncing {
			return
		}
		c.shown = int(v)
		c.readout.SetText(strconv.Itoa(c.shown))
		if err := mw.wb.Edit(pd.Name, c.shown); err != nil {
			mw.log.Error("failed to apply parameter edit", "param", pd.Name, "error", err)
		}
	}
	mw.controls = append(mw.controls, c)

	label := widget.NewLabel(pd.Label)
	return container.NewBorder(nil, nil, label, c.readout, c.slider)
}
