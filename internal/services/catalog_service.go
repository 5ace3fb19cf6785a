package services

import (
	"context"
	"strings"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

// CatalogService owns bus types and their generated seat grids.
type CatalogService struct {
	BusTypes repositories.BusTypeRepository
	Seats    repositories.SeatRepository
}

func (s CatalogService) CreateBusType(ctx context.Context, name string, seatCount int) (models.BusType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BusType{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if seatCount < 0 {
		return models.BusType{}, domain.ValidationError{Field: "seatCount", Msg: "must not be negative"}
	}
	return s.BusTypes.Create(ctx, name, seatCount)
}

func (s CatalogService) ListBusTypes(ctx context.Context) ([]repositories.BusTypeListing, error) {
	return s.BusTypes.List(ctx)
}

// seatPositions lays out the grid deterministically: per middle row the left
// block (cols 1..left) then the right block (cols left+1..left+right), then
// one extended row at rows+1 with lastRow seats. Numbers run 1..N in that
// order with no gaps.
func seatPositions(rows, left, right, lastRow int) []repositories.SeatPosition {
	out := make([]repositories.SeatPosition, 0, rows*(left+right)+lastRow)
	number := 1
	for r := 1; r <= rows; r++ {
		for c := 1; c <= left; c++ {
			out = append(out, repositories.SeatPosition{Row: r, Col: c, Number: number})
			number++
		}
		for c := 1; c <= right; c++ {
			out = append(out, repositories.SeatPosition{Row: r, Col: left + c, Number: number})
			number++
		}
	}
	for c := 1; c <= lastRow; c++ {
		out = append(out, repositories.SeatPosition{Row: rows + 1, Col: c, Number: number})
		number++
	}
	return out
}

// GenerateLayout regenerates a bus type's seat grid. Regeneration destroys
// and recreates every seat, so it is refused while any reservation still
// references the current grid.
func (s CatalogService) GenerateLayout(ctx context.Context, busTypeID int64, rows, left, right, lastRow int) (int, error) {
	if rows < 0 || left < 0 || right < 0 || lastRow < 0 {
		return 0, domain.ValidationError{Field: "layout", Msg: "grid dimensions must not be negative"}
	}
	positions := seatPositions(rows, left, right, lastRow)
	if len(positions) == 0 {
		return 0, domain.ValidationError{Field: "layout", Msg: "layout would contain no seats"}
	}
	if _, err := s.BusTypes.GetByID(ctx, busTypeID); err != nil {
		return 0, err
	}
	grid := models.SeatMapLayout{Rows: rows, LeftSeats: left, RightSeats: right, LastRowSeats: lastRow}
	if err := s.Seats.ReplaceLayout(ctx, busTypeID, grid, positions); err != nil {
		return 0, err
	}
	return len(positions), nil
}

// ListSeats returns the catalog ordered by (row, col); side-effect free.
func (s CatalogService) ListSeats(ctx context.Context, busTypeID int64) ([]models.Seat, error) {
	if _, err := s.BusTypes.GetByID(ctx, busTypeID); err != nil {
		return nil, err
	}
	return s.Seats.ListByBusType(ctx, busTypeID)
}

// SetDefaultSeatStatus changes a seat's catalog default. Reserved is not
// settable here: booked state belongs to the ledger alone.
func (s CatalogService) SetDefaultSeatStatus(ctx context.Context, seatID int64, raw string) (models.Seat, error) {
	status, err := domain.ParseSeatStatus(raw)
	if err != nil {
		return models.Seat{}, err
	}
	if status == domain.SeatReserved {
		return models.Seat{}, domain.ValidationError{Field: "status", Msg: "reserved is set only through a successful reservation"}
	}
	if err := s.Seats.UpdateDefaultStatus(ctx, seatID, status); err != nil {
		return models.Seat{}, err
	}
	return s.Seats.GetByID(ctx, seatID)
}
