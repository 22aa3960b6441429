package services

import (
	"errors"

	"case-management-backend/models"

	"gorm.io/gorm"
)

// RoomService owns rooms and their light assignments.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Add(room models.Room) (models.Room, error) {
	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.
		Preload("Tag").
		Preload("ExistingLights.Product").
		Preload("SuggestedLights.FixtureType").
		Preload("Photos").
		First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Room{}, errors.New("room_not_found")
	}
	return room, err
}

var roomColumns = map[string]string{
	"location": "location",
	"tagId":    "tag_id",
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	cleaned := map[string]interface{}{}
	for key, value := range updates {
		if col, ok := roomColumns[key]; ok {
			cleaned[col] = value
		}
	}
	if len(cleaned) == 0 {
		return errors.New("invalid_update_payload")
	}

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(cleaned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}

// Delete removes the room and cascades its assignments and photos in one
// transaction.
func (s *RoomService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("room_not_found")
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.ExistingLightAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.SuggestedLightAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("room_id = ?", id).Delete(&models.RoomPhoto{}).Error
	})
}

// ReplaceLights swaps both assignment sets of a room atomically. Quantity
// floors at 1 so a bad payload can't zero out a surveyed fixture.
func (s *RoomService) ReplaceLights(roomID uint, existing []models.ExistingLightAssignment, suggested []models.SuggestedLightAssignment) error {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("room_not_found")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&models.ExistingLightAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.SuggestedLightAssignment{}).Error; err != nil {
			return err
		}

		for i := range existing {
			existing[i].ID = 0
			existing[i].RoomID = roomID
			if existing[i].Quantity < 1 {
				existing[i].Quantity = 1
			}
		}
		if len(existing) > 0 {
			if err := tx.Create(&existing).Error; err != nil {
				return err
			}
		}

		for i := range suggested {
			suggested[i].ID = 0
			suggested[i].RoomID = roomID
			if suggested[i].Quantity < 1 {
				suggested[i].Quantity = 1
			}
		}
		if len(suggested) > 0 {
			if err := tx.Create(&suggested).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
