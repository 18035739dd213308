package orderrepo

import (
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID              int64     `gorm:"column:order_id;primaryKey;autoIncrement"`
	SenderID        int64     `gorm:"column:sender_id;not null;index"`
	CarrierID       *int64    `gorm:"column:carrier_id;index"`
	CargoType       string    `gorm:"column:cargo_type;not null"`
	Weight          float64   `gorm:"column:weight;not null"`
	Dimensions      *string   `gorm:"column:dimensions"`
	PickupAddress   string    `gorm:"column:pickup_address;not null"`
	DeliveryAddress string    `gorm:"column:delivery_address;not null"`
	PickupDate      string    `gorm:"column:pickup_date;not null"`
	Comment         *string   `gorm:"column:comment"`
	Status          string    `gorm:"column:status;not null;default:new;index"`
	Stage           *string   `gorm:"column:stage"`
	CreationDate    time.Time `gorm:"column:creation_date;not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	c := o.Cargo()

	var stage *string
	if o.Stage().IsSet() {
		s := o.Stage().String()
		stage = &s
	}

	return OrderDTO{
		ID:              o.ID(),
		SenderID:        o.SenderID(),
		CarrierID:       o.CarrierID(),
		CargoType:       c.Type.String(),
		Weight:          c.Weight.Kilograms(),
		Dimensions:      c.Dimensions,
		PickupAddress:   c.PickupAddress,
		DeliveryAddress: c.DeliveryAddress,
		PickupDate:      c.PickupDate,
		Comment:         c.Comment,
		Status:          o.Status().String(),
		Stage:           stage,
		CreationDate:    o.CreatedAt(),
	}
}

// mutableColumns lists what Update may overwrite. Nil pointers are written as NULL.
func (dto OrderDTO) mutableColumns() map[string]any {
	return map[string]any{
		"carrier_id":       dto.CarrierID,
		"cargo_type":       dto.CargoType,
		"weight":           dto.Weight,
		"dimensions":       dto.Dimensions,
		"pickup_address":   dto.PickupAddress,
		"delivery_address": dto.DeliveryAddress,
		"pickup_date":      dto.PickupDate,
		"comment":          dto.Comment,
		"status":           dto.Status,
		"stage":            dto.Stage,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	cargoType, err := order.ParseCargoType(dto.CargoType)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	stage := order.StageNone
	if dto.Stage != nil {
		if stage, err = order.ParseStage(*dto.Stage); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		dto.ID,
		dto.SenderID,
		dto.CarrierID,
		order.Cargo{
			Type:            cargoType,
			Weight:          weight,
			Dimensions:      dto.Dimensions,
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
			PickupDate:      dto.PickupDate,
			Comment:         dto.Comment,
		},
		status,
		stage,
		dto.CreationDate,
	)
}
