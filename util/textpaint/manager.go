package textpaint

import (
	"github.com/jmigpin/textdeco/util/evreg"
)

// Translates viewer events into paint reasons for the registered painters, and owns the position manager they share.
type PaintManager struct {
	viewer   Viewer
	painters []Painter
	pm       *PositionManager

	inputRegs evreg.Unregister // input about to change/changed
	regs      evreg.Unregister // selection, text, key, mouse

	gen int // incremented on dispose; deferred paints of older generations are dropped
}

func NewPaintManager(v Viewer) *PaintManager {
	return &PaintManager{viewer: v}
}

//----------

func (m *PaintManager) AddPainter(p Painter) {
	if m.index(p) >= 0 {
		return
	}
	m.painters = append(m.painters, p)
	if len(m.painters) == 1 {
		m.install()
	}
	p.SetPositionManager(m.pm)
	p.Paint(Internal)
}

func (m *PaintManager) RemovePainter(p Painter) {
	i := m.index(p)
	if i < 0 {
		return
	}
	u := make([]Painter, 0, len(m.painters)-1)
	u = append(u, m.painters[:i]...)
	m.painters = append(u, m.painters[i+1:]...)

	p.Deactivate(true)
	p.SetPositionManager(nil)

	if len(m.painters) == 0 {
		m.Dispose()
	}
}

func (m *PaintManager) Dispose() {
	m.gen++
	if m.pm != nil {
		m.pm.Dispose()
		m.pm = nil
	}
	for _, p := range m.snapshot() {
		p.Dispose()
	}
	m.painters = nil
	m.regs.UnregisterAll()
	m.inputRegs.UnregisterAll()
}

//----------

func (m *PaintManager) Paint(reason Reason) {
	w := m.viewer.TextWidget()
	if w == nil || w.IsDisposed() {
		return
	}
	for _, p := range m.snapshot() {
		p.Paint(reason)
	}
}

//----------

func (m *PaintManager) Painters() []Painter {
	return m.snapshot()
}

func (m *PaintManager) PositionManager() *PositionManager {
	return m.pm
}

//----------

func (m *PaintManager) install() {
	m.pm = NewPositionManager()
	m.addInputListeners()
	if doc := m.viewer.Document(); doc != nil {
		m.pm.Install(doc)
		m.addListeners()
	}
}

func (m *PaintManager) addInputListeners() {
	if m.inputRegs.Len() > 0 {
		return
	}
	reg := m.viewer.EvReg()
	m.inputRegs.Add(
		reg.Add(ViewerEvIdInputAboutToChange, func(ev any) {
			m.inputAboutToChange(ev.(*InputEvent))
		}),
		reg.Add(ViewerEvIdInputChanged, func(ev any) {
			m.inputChanged(ev.(*InputEvent))
		}),
	)
}

func (m *PaintManager) addListeners() {
	if m.regs.Len() > 0 {
		return
	}
	reg := m.viewer.EvReg()
	m.regs.Add(
		reg.Add(ViewerEvIdSelectionChanged, func(ev any) {
			m.Paint(Selection)
		}),
		reg.Add(ViewerEvIdKeyDown, func(ev any) {
			m.Paint(KeyStroke)
		}),
		reg.Add(ViewerEvIdMouseDown, func(ev any) {
			m.Paint(MouseButton)
		}),
		reg.Add(ViewerEvIdTextChanged, func(ev any) {
			m.textChanged(ev.(*TextEvent))
		}),
	)
}

//----------

func (m *PaintManager) inputAboutToChange(ev *InputEvent) {
	if ev.Old == nil || m.pm == nil {
		return
	}
	for _, p := range m.snapshot() {
		p.Deactivate(false)
	}
	m.pm.Uninstall(ev.Old)
	m.regs.UnregisterAll()
}

func (m *PaintManager) inputChanged(ev *InputEvent) {
	if ev.New == nil || m.pm == nil {
		return
	}
	if m.pm.Installed() && m.pm.Document() == ev.New {
		return
	}
	m.pm.Install(ev.New)
	m.Paint(TextChange)
	m.addListeners()
}

func (m *PaintManager) textChanged(ev *TextEvent) {
	if !ev.RedrawEnabled {
		return
	}
	gen := m.gen
	m.viewer.RunOnUIThread(func() {
		if gen != m.gen {
			return
		}
		m.Paint(TextChange)
	})
}

//----------

func (m *PaintManager) index(p Painter) int {
	for i, p2 := range m.painters {
		if p2 == p {
			return i
		}
	}
	return -1
}

func (m *PaintManager) snapshot() []Painter {
	return append([]Painter{}, m.painters...)
}
