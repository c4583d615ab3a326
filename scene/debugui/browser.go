package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
)

type ActorRow struct {
	ID             scene.ActorId
	State          scene.State
	Position       mgl32.Vec3
	ComponentCount int
}

// ActorRows snapshots the given actors for display.
func ActorRows(actors []*scene.Actor) []ActorRow {
	rows := make([]ActorRow, len(actors))
	for i, a := range actors {
		rows[i] = ActorRow{
			ID:             a.Id(),
			State:          a.State(),
			Position:       a.Position(),
			ComponentCount: len(a.Components()),
		}
	}
	return rows
}

// SortRows orders rows by the browser column index.
func SortRows(rows []ActorRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1:
			less = a.State < b.State
		case 2:
			less = a.Position.Len() < b.Position.Len()
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// FilterRows keeps rows whose id or state contains text, case-insensitively.
func FilterRows(rows []ActorRow, text string) []ActorRow {
	if text == "" {
		return rows
	}

	filterLower := strings.ToLower(text)
	filtered := make([]ActorRow, 0, len(rows))
	for _, row := range rows {
		idStr := fmt.Sprintf("%d", row.ID)
		stateStr := strings.ToLower(row.State.String())
		if strings.Contains(idStr, filterLower) || strings.Contains(stateStr, filterLower) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

type ActorBrowserComponent struct {
	scene.ComponentBase

	selected      scene.ActorId
	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	currentPage   int
}

func NewActorBrowserComponent(owner *scene.Actor, perPage int) *ActorBrowserComponent {
	b := &ActorBrowserComponent{
		ComponentBase: scene.NewComponentBase(owner, PanelOrder),
		sortAscending: true,
		perPage:       perPage,
	}
	owner.AddComponent(b)
	return b
}

func (b *ActorBrowserComponent) Selected() scene.ActorId {
	return b.selected
}

func (b *ActorBrowserComponent) Update(float64) {
	owner := b.Owner()
	if owner == nil {
		return
	}
	r := owner.Registry()
	if r == nil {
		return
	}

	if !imgui.BeginV("Actor Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &b.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		b.filterText = ""
	}

	rows := ActorRows(r.Actors())
	SortRows(rows, b.sortColumn, b.sortAscending)
	rows = FilterRows(rows, b.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ActorTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Actor ID")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			b.sortColumn = int(spec.ColumnIndex())
			b.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(b.currentPage*b.perPage, len(rows))
		end := min(start+b.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), b.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(row.State.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f, %.1f", row.Position.X(), row.Position.Y(), row.Position.Z()))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(rows) > b.perPage {
		totalPages := (len(rows) + b.perPage - 1) / b.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d actors)", b.currentPage+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && b.currentPage > 0 {
			b.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && b.currentPage < totalPages-1 {
			b.currentPage++
		}
	} else {
		b.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d actors", len(rows)))
	}

	imgui.End()
}
