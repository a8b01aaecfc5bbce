package floorplan

import (
	"estate_market/geometry"
	"estate_market/model"
	"estate_market/utils"
)

type ViewerOptions struct {
	Role string
	// CanManageSales is computed by the caller from builder ownership or
	// the manager's claim permission.
	CanManageSales bool
	Language       string
}

type ViewerCallbacks struct {
	OnReserve      func(apartmentId, proofRef string)
	OnStatusUpdate func(apartmentId string, status model.ApartmentStatus)
	OnContact      func()
}

// RenderedUnit is everything needed to draw one apartment on the overlay.
type RenderedUnit struct {
	ID         string                `json:"id"`
	UnitNumber string                `json:"unitNumber"`
	Status     model.ApartmentStatus `json:"status"`
	Points     string                `json:"points"`
	Style      Style                 `json:"style"`
	Label      geometry.Point        `json:"label"`
	Lock       *geometry.Point       `json:"lock,omitempty"`
	Price      string                `json:"price"`
	Rooms      int                   `json:"rooms"`
	AreaSqFt   float64               `json:"areaSqFt"`
}

type Viewer struct {
	imageUrl   string
	apartments []model.Apartment
	opts       ViewerOptions
	callbacks  ViewerCallbacks
	selectedId string
	proofRef   string
}

func NewViewer(imageUrl string, apartments []model.Apartment, opts ViewerOptions, callbacks ViewerCallbacks) *Viewer {
	return &Viewer{
		imageUrl:   imageUrl,
		apartments: cloneApartments(apartments),
		opts:       opts,
		callbacks:  callbacks,
	}
}

func (v *Viewer) ImageUrl() string { return v.imageUrl }

func (v *Viewer) CanManageSales() bool { return v.opts.CanManageSales }

func (v *Viewer) Render() []RenderedUnit {
	units := make([]RenderedUnit, 0, len(v.apartments))
	for _, a := range v.apartments {
		units = append(units, renderUnit(a))
	}
	return units
}

func renderUnit(a model.Apartment) RenderedUnit {
	center := geometry.PolygonCentroid(a.Points())
	unit := RenderedUnit{
		ID:         a.ID,
		UnitNumber: a.UnitNumber,
		Status:     a.Status,
		Points:     geometry.SerializePolygon(a.Points()),
		Style:      StatusStyle(a.Status),
		Label:      center,
		Price:      utils.FormatPrice(a.Price),
		Rooms:      a.Rooms,
		AreaSqFt:   a.AreaSqFt,
	}
	if IsLocked(a.Status) {
		unit.Label.Y = center.Y - 3
		unit.Lock = &geometry.Point{X: center.X - 2, Y: center.Y - 1}
	}
	return unit
}

func (v *Viewer) Select(id string) bool {
	for _, a := range v.apartments {
		if a.ID == id {
			if v.selectedId != id {
				v.proofRef = ""
			}
			v.selectedId = id
			return true
		}
	}
	return false
}

func (v *Viewer) Selected() (model.Apartment, bool) {
	for _, a := range v.apartments {
		if a.ID == v.selectedId {
			return a, true
		}
	}
	return model.Apartment{}, false
}

func (v *Viewer) Close() {
	v.selectedId = ""
	v.proofRef = ""
}

// AttachProof replaces the proof slot. The last attached reference wins.
func (v *Viewer) AttachProof(ref string) {
	v.proofRef = ref
}

func (v *Viewer) CanSubmitClaim() bool {
	a, ok := v.Selected()
	return ok && v.proofRef != "" && a.Status == model.StatusAvailable
}

// SubmitClaim fires OnReserve once and clears the proof and the selection.
// Without a proof or on a unit that is not AVAILABLE it does nothing.
func (v *Viewer) SubmitClaim() bool {
	if !v.CanSubmitClaim() {
		return false
	}
	id, proof := v.selectedId, v.proofRef
	v.Close()
	if v.callbacks.OnReserve != nil {
		v.callbacks.OnReserve(id, proof)
	}
	return true
}

func (v *Viewer) CanDecide() bool {
	a, ok := v.Selected()
	return ok && v.opts.CanManageSales && a.Status == model.StatusPending
}

func (v *Viewer) Approve() bool {
	return v.decide(model.StatusSold)
}

func (v *Viewer) Reject() bool {
	return v.decide(model.StatusAvailable)
}

func (v *Viewer) decide(status model.ApartmentStatus) bool {
	if !v.CanDecide() {
		return false
	}
	id := v.selectedId
	v.Close()
	if v.callbacks.OnStatusUpdate != nil {
		v.callbacks.OnStatusUpdate(id, status)
	}
	return true
}

func (v *Viewer) Contact() {
	if v.callbacks.OnContact != nil {
		v.callbacks.OnContact()
	}
}
