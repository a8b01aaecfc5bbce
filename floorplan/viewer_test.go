package floorplan

import (
	"fmt"
	"testing"

	"estate_market/geometry"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	reserves []string
	updates  []string
	contacts int
}

func (r *recorder) callbacks() ViewerCallbacks {
	return ViewerCallbacks{
		OnReserve: func(id, proof string) { r.reserves = append(r.reserves, id+"|"+proof) },
		OnStatusUpdate: func(id string, status model.ApartmentStatus) {
			r.updates = append(r.updates, fmt.Sprintf("%s|%s", id, status))
		},
		OnContact: func() { r.contacts++ },
	}
}

func sampleApartments() []model.Apartment {
	return []model.Apartment{
		{ID: "free", UnitNumber: "101", Status: model.StatusAvailable, Price: 1250000, Shape: square(0, 0, 10)},
		{ID: "pending", UnitNumber: "102", Status: model.StatusPending, Price: 99000, Shape: square(20, 20, 10)},
		{ID: "sold", UnitNumber: "103", Status: model.StatusSold, Shape: square(40, 40, 10)},
	}
}

func TestViewer_ClaimNeedsProof(t *testing.T) {
	rec := &recorder{}
	v := NewViewer("plan.png", sampleApartments(), ViewerOptions{Role: "BUYER"}, rec.callbacks())

	require.True(t, v.Select("free"))
	assert.False(t, v.SubmitClaim())
	assert.Empty(t, rec.reserves)

	v.AttachProof("data:image/png;base64,AAA")
	assert.True(t, v.SubmitClaim())
	assert.Equal(t, []string{"free|data:image/png;base64,AAA"}, rec.reserves)

	_, selected := v.Selected()
	assert.False(t, selected)
	// proof slot was cleared, a second submit does nothing
	require.True(t, v.Select("free"))
	assert.False(t, v.SubmitClaim())
	assert.Len(t, rec.reserves, 1)
}

func TestViewer_ClaimOnlyWhenAvailable(t *testing.T) {
	rec := &recorder{}
	v := NewViewer("", sampleApartments(), ViewerOptions{}, rec.callbacks())

	require.True(t, v.Select("sold"))
	v.AttachProof("proof")
	assert.False(t, v.SubmitClaim())
	assert.Empty(t, rec.reserves)
}

func TestViewer_DecisionsNeedCapability(t *testing.T) {
	rec := &recorder{}
	buyer := NewViewer("", sampleApartments(), ViewerOptions{Role: "BUYER"}, rec.callbacks())
	require.True(t, buyer.Select("pending"))
	assert.False(t, buyer.Approve())
	assert.False(t, buyer.Reject())
	assert.Empty(t, rec.updates)

	manager := NewViewer("", sampleApartments(), ViewerOptions{Role: "MANAGER", CanManageSales: true}, rec.callbacks())
	require.True(t, manager.Select("free"))
	assert.False(t, manager.Approve())

	require.True(t, manager.Select("pending"))
	assert.True(t, manager.Approve())
	require.True(t, manager.Select("pending"))
	assert.True(t, manager.Reject())
	assert.Equal(t, []string{"pending|SOLD", "pending|AVAILABLE"}, rec.updates)

	manager.Contact()
	assert.Equal(t, 1, rec.contacts)
}

func TestViewer_RenderLabelsAndLocks(t *testing.T) {
	v := NewViewer("", sampleApartments(), ViewerOptions{}, ViewerCallbacks{})
	units := v.Render()
	require.Len(t, units, 3)

	free := units[0]
	assert.Equal(t, geometry.Point{X: 5, Y: 5}, free.Label)
	assert.Nil(t, free.Lock)
	assert.Equal(t, "$1,250,000", free.Price)
	assert.Equal(t, StatusStyle(model.StatusAvailable), free.Style)

	pending := units[1]
	assert.Equal(t, geometry.Point{X: 25, Y: 22}, pending.Label)
	require.NotNil(t, pending.Lock)
	assert.Equal(t, geometry.Point{X: 23, Y: 24}, *pending.Lock)
}

func TestViewer_RoundTripFromEditor(t *testing.T) {
	var stored []model.Apartment
	e := NewEditor(3, "plan.png", nil, func(list []model.Apartment) error {
		stored = list
		return nil
	}, sequentialIds())
	drawApartment(t, e, square(10, 10, 20), "201")
	drawApartment(t, e, []geometry.Point{{X: 50, Y: 50}, {X: 80, Y: 50}, {X: 65, Y: 90}}, "202")

	units := NewViewer("plan.png", stored, ViewerOptions{}, ViewerCallbacks{}).Render()
	require.Len(t, units, len(stored))
	for i, unit := range units {
		assert.Equal(t, stored[i].UnitNumber, unit.UnitNumber)
		assert.Equal(t, geometry.PolygonCentroid(stored[i].Points()), unit.Label)
	}

	svg := NewViewer("plan.png", stored, ViewerOptions{}, ViewerCallbacks{}).RenderOverlay()
	assert.Contains(t, svg, `data-id="apt-1"`)
	assert.Contains(t, svg, `fill="rgba(34, 197, 94, 0.4)"`)
	assert.NotContains(t, svg, `<use href="#lock"`)
}

func TestStatusStyleIsTotalAndStable(t *testing.T) {
	seen := map[string]model.ApartmentStatus{}
	for _, s := range model.ApartmentStatuses {
		style := StatusStyle(s)
		assert.NotEqual(t, unknownStyle, style)
		assert.Equal(t, style, StatusStyle(s))
		_, dup := seen[style.Fill]
		assert.False(t, dup)
		seen[style.Fill] = s
	}
	assert.Equal(t, "#ca8a04", StatusStyle(model.StatusReserved).Stroke)
	assert.Equal(t, "#475569", StatusStyle(model.StatusSold).Stroke)
}

func TestReplicateFloor(t *testing.T) {
	owner := uint(4)
	proof := "p"
	template := []model.Apartment{
		{ID: "t1", UnitNumber: "01", Rooms: 2, AreaSqFt: 700, Price: 100, Status: model.StatusSold, OwnerId: &owner, ProofImageUrl: &proof, Shape: square(0, 0, 10)},
		{ID: "t2", UnitNumber: "02", Rooms: 3, AreaSqFt: 900, Price: 200, Shape: square(20, 0, 10)},
	}

	floor := ReplicateFloor(template, 12, 77)
	require.Len(t, floor, 2)
	assert.Equal(t, "1201", floor[0].UnitNumber)
	assert.Equal(t, "1202", floor[1].UnitNumber)
	assert.Equal(t, model.StatusAvailable, floor[0].Status)
	assert.Nil(t, floor[0].OwnerId)
	assert.Nil(t, floor[0].ProofImageUrl)
	assert.Equal(t, uint(77), floor[0].FloorPlanId)
	assert.NotEqual(t, "t1", floor[0].ID)
	assert.NotEqual(t, floor[0].ID, floor[1].ID)
	assert.Equal(t, template[0].Points(), floor[0].Points())
}
