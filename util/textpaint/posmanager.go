package textpaint

import (
	"log"

	"github.com/jmigpin/textdeco/util/textdoc"
	"github.com/pkg/errors"
)

// Keeps the positions of the painters updated while the document is edited. Attached to at most one document.
type PositionManager struct {
	doc     Document
	cat     *textdoc.Category
	updater *textdoc.DefaultPositionUpdater
}

func NewPositionManager() *PositionManager {
	return &PositionManager{}
}

//----------

// No-op if already installed (uninstall first to change documents).
func (pm *PositionManager) Install(doc Document) *textdoc.Category {
	if pm.doc != nil {
		return pm.cat
	}
	pm.doc = doc
	pm.cat = doc.AddPositionCategory()
	pm.updater = &textdoc.DefaultPositionUpdater{
		Category: pm.cat,
		Policy:   textdoc.UpdateExtend,
	}
	doc.AddPositionUpdater(pm.updater)
	return pm.cat
}

func (pm *PositionManager) Uninstall(doc Document) {
	if pm.doc == nil || pm.doc != doc {
		return
	}
	doc.RemovePositionUpdater(pm.updater)
	logUnexpected(doc.RemovePositionCategory(pm.cat))
	pm.doc = nil
	pm.cat = nil
	pm.updater = nil
}

func (pm *PositionManager) Dispose() {
	if pm.doc != nil {
		pm.Uninstall(pm.doc)
	}
}

//----------

func (pm *PositionManager) ManagePosition(p *textdoc.Position) {
	if pm.doc == nil {
		return
	}
	logUnexpected(pm.doc.AddPosition(pm.cat, p))
}

func (pm *PositionManager) UnmanagePosition(p *textdoc.Position) {
	if pm.doc == nil {
		return
	}
	logUnexpected(pm.doc.RemovePosition(pm.cat, p))
}

//----------

func (pm *PositionManager) Installed() bool {
	return pm.doc != nil
}

func (pm *PositionManager) Document() Document {
	return pm.doc
}

func (pm *PositionManager) Category() *textdoc.Category {
	return pm.cat
}

//----------

// Categories and positions already removed by the document are expected (ex: input swap, deleted text).
func logUnexpected(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, textdoc.ErrBadCategory) || errors.Is(err, textdoc.ErrBadPosition) {
		return
	}
	log.Print(err)
}
