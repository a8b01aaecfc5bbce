// Package floorplan holds the apartment polygon editor, the read-side
// viewer and the apartment lifecycle rules shared by both.
package floorplan

import (
	"errors"

	"estate_market/geometry"
	"estate_market/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type EditorState string

const (
	StateIdle     EditorState = "IDLE"
	StateDrawing  EditorState = "DRAWING"
	StateForm     EditorState = "FORM"
	StateSelected EditorState = "SELECTED"
)

var (
	ErrInvalidState      = errors.New("action not allowed in current editor state")
	ErrTooFewPoints      = errors.New("a shape needs at least 3 points")
	ErrApartmentNotFound = errors.New("apartment not found on this floor plan")
)

const MinShapePoints = 3

var validate = validator.New()

// SaveFunc receives the complete apartment list after every add or delete.
type SaveFunc func(apartments []model.Apartment) error

// ApartmentForm is the metadata captured after a shape is finished.
type ApartmentForm struct {
	UnitNumber string  `json:"unitNumber" validate:"required"`
	Rooms      int     `json:"rooms" validate:"required,gt=0"`
	AreaSqFt   float64 `json:"areaSqFt" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
}

type Editor struct {
	floorPlanId uint
	imageUrl    string
	apartments  []model.Apartment
	state       EditorState
	points      []geometry.Point
	selectedId  string
	onSave      SaveFunc
	newId       func() string
}

type EditorOption func(*Editor)

// WithIdGenerator replaces the uuid generator used for new apartments.
func WithIdGenerator(fn func() string) EditorOption {
	return func(e *Editor) { e.newId = fn }
}

// NewEditor seeds the editor with its own copy of the apartments. Later
// changes to the store are not picked up.
func NewEditor(floorPlanId uint, imageUrl string, apartments []model.Apartment, onSave SaveFunc, opts ...EditorOption) *Editor {
	e := &Editor{
		floorPlanId: floorPlanId,
		imageUrl:    imageUrl,
		apartments:  cloneApartments(apartments),
		state:       StateIdle,
		onSave:      onSave,
		newId:       func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) State() EditorState { return e.state }

func (e *Editor) FloorPlanId() uint { return e.floorPlanId }

func (e *Editor) ImageUrl() string { return e.imageUrl }

func (e *Editor) Points() []geometry.Point {
	return append([]geometry.Point(nil), e.points...)
}

func (e *Editor) Apartments() []model.Apartment {
	return cloneApartments(e.apartments)
}

func (e *Editor) SelectedId() string { return e.selectedId }

func (e *Editor) Selected() (model.Apartment, bool) {
	if e.selectedId == "" {
		return model.Apartment{}, false
	}
	i := e.indexOf(e.selectedId)
	if i < 0 {
		return model.Apartment{}, false
	}
	return e.apartments[i], true
}

func (e *Editor) StartDrawing() error {
	if e.state != StateIdle && e.state != StateSelected {
		return ErrInvalidState
	}
	e.selectedId = ""
	e.points = e.points[:0]
	e.state = StateDrawing
	return nil
}

func (e *Editor) AddPoint(p geometry.Point) error {
	if e.state != StateDrawing {
		return ErrInvalidState
	}
	e.points = append(e.points, geometry.ClampPoint(p))
	return nil
}

func (e *Editor) CanFinish() bool {
	return e.state == StateDrawing && len(e.points) >= MinShapePoints
}

func (e *Editor) FinishShape() error {
	if e.state != StateDrawing {
		return ErrInvalidState
	}
	if len(e.points) < MinShapePoints {
		return ErrTooFewPoints
	}
	e.state = StateForm
	return nil
}

// Cancel drops any shape in progress. It is valid in every state.
func (e *Editor) Cancel() {
	e.points = nil
	e.selectedId = ""
	e.state = StateIdle
}

// Confirm turns the captured shape into an AVAILABLE apartment and emits the
// full list. Local state is kept even when onSave fails.
func (e *Editor) Confirm(form ApartmentForm) (model.Apartment, error) {
	if e.state != StateForm {
		return model.Apartment{}, ErrInvalidState
	}
	if err := validate.Struct(form); err != nil {
		return model.Apartment{}, err
	}

	apartment := model.Apartment{
		ID:          e.newId(),
		FloorPlanId: e.floorPlanId,
		UnitNumber:  form.UnitNumber,
		Rooms:       form.Rooms,
		AreaSqFt:    form.AreaSqFt,
		Price:       form.Price,
		Status:      model.StatusAvailable,
		Shape:       append([]geometry.Point(nil), e.points...),
	}
	e.apartments = append(e.apartments, apartment)
	e.points = nil
	e.state = StateIdle

	return apartment, e.emit()
}

func (e *Editor) Discard() error {
	if e.state != StateForm {
		return ErrInvalidState
	}
	e.points = nil
	e.state = StateIdle
	return nil
}

func (e *Editor) Select(id string) error {
	if e.state != StateIdle && e.state != StateSelected {
		return ErrInvalidState
	}
	if e.indexOf(id) < 0 {
		return ErrApartmentNotFound
	}
	e.selectedId = id
	e.state = StateSelected
	return nil
}

// SelectAt selects the topmost apartment whose polygon contains p. Later
// apartments are drawn on top of earlier ones.
func (e *Editor) SelectAt(p geometry.Point) (model.Apartment, error) {
	if e.state != StateIdle && e.state != StateSelected {
		return model.Apartment{}, ErrInvalidState
	}
	for i := len(e.apartments) - 1; i >= 0; i-- {
		if geometry.Contains(e.apartments[i].Points(), p) {
			e.selectedId = e.apartments[i].ID
			e.state = StateSelected
			return e.apartments[i], nil
		}
	}
	return model.Apartment{}, ErrApartmentNotFound
}

func (e *Editor) Deselect() error {
	if e.state != StateSelected {
		return ErrInvalidState
	}
	e.selectedId = ""
	e.state = StateIdle
	return nil
}

func (e *Editor) Delete() (model.Apartment, error) {
	if e.state != StateSelected {
		return model.Apartment{}, ErrInvalidState
	}
	i := e.indexOf(e.selectedId)
	if i < 0 {
		e.selectedId = ""
		e.state = StateIdle
		return model.Apartment{}, ErrApartmentNotFound
	}
	removed := e.apartments[i]
	e.apartments = append(e.apartments[:i:i], e.apartments[i+1:]...)
	e.selectedId = ""
	e.state = StateIdle

	return removed, e.emit()
}

func (e *Editor) emit() error {
	if e.onSave == nil {
		return nil
	}
	return e.onSave(cloneApartments(e.apartments))
}

func (e *Editor) indexOf(id string) int {
	for i := range e.apartments {
		if e.apartments[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneApartments(src []model.Apartment) []model.Apartment {
	out := make([]model.Apartment, len(src))
	for i, a := range src {
		a.Shape = append([]geometry.Point(nil), a.Shape...)
		out[i] = a
	}
	return out
}
