package handlers

import (
	"errors"
	"net/http"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OfficeTypeRequest struct {
	TypeName    string `json:"TypeName" binding:"required,max=100"`
	Description string `json:"Description"`
}

type OfficeRequest struct {
	OfficeName   string `json:"OfficeName" binding:"required,max=200"`
	OfficeTypeID uint   `json:"OfficeTypeID" binding:"required"`
	Description  string `json:"Description"`
}

type HeadOfOfficeRequest struct {
	HeadName string `json:"HeadName" binding:"required,max=200"`
	Email    string `json:"Email" binding:"required,email"`
	Position string `json:"Position" binding:"max=100"`
	OfficeID uint   `json:"OfficeID" binding:"required"`
}

type DeleteHeadsRequest struct {
	HeadIDs []uint `json:"headIds"`
}

// ListOfficeTypes lists all office types
// GET /office-types
func ListOfficeTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var types []models.OfficeType
		if err := db.Order("TypeName asc").Find(&types).Error; err != nil {
			fail(c, err)
			return
		}
		ok(c, types)
	}
}

// AddOfficeType creates an office type
// POST /office-types/add
func AddOfficeType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OfficeTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		officeType := models.OfficeType{
			TypeName:    req.TypeName,
			Description: req.Description,
		}
		if err := db.Create(&officeType).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Office type already exists"})
				return
			}
			fail(c, err)
			return
		}
		created(c, officeType)
	}
}

// ListOffices lists active offices with their type
// GET /offices
func ListOffices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offices []models.Office
		if err := db.Preload("OfficeType").Where("IsActive = ?", true).
			Order("OfficeName asc").Find(&offices).Error; err != nil {
			fail(c, err)
			return
		}
		ok(c, offices)
	}
}

// AddOffice creates an office
// POST /offices/add
func AddOffice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OfficeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var officeType models.OfficeType
		if err := db.First(&officeType, "OfficeTypeID = ?", req.OfficeTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, "Office type not found")
				return
			}
			fail(c, err)
			return
		}
		office := models.Office{
			OfficeName:   req.OfficeName,
			OfficeTypeID: req.OfficeTypeID,
			Description:  req.Description,
			IsActive:     true,
		}
		if err := db.Create(&office).Error; err != nil {
			fail(c, err)
			return
		}
		created(c, office)
	}
}

// UpdateOffice updates an office
// PUT /offices/:id
func UpdateOffice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		var req OfficeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var office models.Office
		if err := db.First(&office, "OfficeID = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Office not found"})
				return
			}
			fail(c, err)
			return
		}
		office.OfficeName = req.OfficeName
		office.OfficeTypeID = req.OfficeTypeID
		office.Description = req.Description
		if err := db.Save(&office).Error; err != nil {
			fail(c, err)
			return
		}
		ok(c, office)
	}
}

// ListHeadsOfOffice lists office heads with their office
// GET /office-heads
func ListHeadsOfOffice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var heads []models.HeadOfOffice
		if err := db.Preload("Office").Order("HeadName asc").Find(&heads).Error; err != nil {
			fail(c, err)
			return
		}
		ok(c, heads)
	}
}

// AddHeadOfOffice creates an office head; duplicate emails are a conflict
// POST /office-heads/add
func AddHeadOfOffice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HeadOfOfficeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var office models.Office
		if err := db.First(&office, "OfficeID = ?", req.OfficeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, "Office not found")
				return
			}
			fail(c, err)
			return
		}
		head := models.HeadOfOffice{
			HeadName: req.HeadName,
			Email:    req.Email,
			Position: req.Position,
			OfficeID: req.OfficeID,
		}
		if err := db.Create(&head).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An office head with this email already exists"})
				return
			}
			fail(c, err)
			return
		}
		created(c, head)
	}
}

// DeleteHeadsOfOffice bulk-deletes office heads
// POST /office-heads/delete
func DeleteHeadsOfOffice(svc *services.BulkDeleteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteHeadsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "headIds must be a non-empty array of IDs")
			return
		}
		count, err := svc.DeleteHeads(req.HeadIDs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": count})
	}
}
