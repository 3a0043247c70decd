package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxEvidenceSize = 50 << 20 // 50 MB

// UploadEvidence attaches a compliance document to a requirement
// POST /requirements/:id/evidence
func UploadEvidence(store repository.Store, storage *services.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requirementID, valid := pathID(c, "id")
		if !valid {
			return
		}
		if _, err := store.GetRequirement(requirementID); err != nil {
			if err == repository.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Requirement not found"})
				return
			}
			fail(c, err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "File is required")
			return
		}
		if fileHeader.Size > maxEvidenceSize {
			badRequest(c, "File exceeds the 50MB limit")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			fail(c, err)
			return
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		objectKey := fmt.Sprintf("requirements/%d/%s%s", requirementID, uuid.New().String(), filepath.Ext(fileHeader.Filename))

		if err := storage.UploadFile(c.Request.Context(), file, objectKey, fileHeader.Size, contentType); err != nil {
			fail(c, err)
			return
		}

		userID, _ := c.Get("user_id")
		uploadedBy, _ := userID.(uint)

		evidence := models.Evidence{
			RequirementID: requirementID,
			FileName:      fileHeader.Filename,
			ObjectKey:     objectKey,
			ContentType:   contentType,
			FileSize:      fileHeader.Size,
			UploadedBy:    uploadedBy,
		}
		if err := store.InsertEvidence(&evidence); err != nil {
			// Metadata insert failed; don't leave the orphan object behind.
			if derr := storage.DeleteFile(c.Request.Context(), objectKey); derr != nil {
				log.Printf("Failed to remove orphan evidence object %s: %v", objectKey, derr)
			}
			fail(c, err)
			return
		}
		created(c, evidence)
	}
}

// ListEvidence lists a requirement's evidence metadata
// GET /requirements/:id/evidence
func ListEvidence(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		requirementID, valid := pathID(c, "id")
		if !valid {
			return
		}
		evidence, err := store.ListEvidenceByRequirement(requirementID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, evidence)
	}
}

// DownloadEvidence streams an evidence file
// GET /evidence/:id/download
func DownloadEvidence(store repository.Store, storage *services.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		evidence, err := store.GetEvidence(id)
		if err != nil {
			if err == repository.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Evidence not found"})
				return
			}
			fail(c, err)
			return
		}
		object, err := storage.DownloadFile(c.Request.Context(), evidence.ObjectKey)
		if err != nil {
			fail(c, err)
			return
		}
		defer object.Close()

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", evidence.FileName))
		c.DataFromReader(http.StatusOK, evidence.FileSize, evidence.ContentType, object, nil)
	}
}

// DeleteEvidence removes an evidence file and its metadata
// DELETE /evidence/:id
func DeleteEvidence(store repository.Store, storage *services.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		evidence, err := store.GetEvidence(id)
		if err != nil {
			if err == repository.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Evidence not found"})
				return
			}
			fail(c, err)
			return
		}
		if err := storage.DeleteFile(c.Request.Context(), evidence.ObjectKey); err != nil {
			log.Printf("Failed to delete evidence object %s: %v", evidence.ObjectKey, err)
		}
		if _, err := store.DeleteEvidence(id); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Evidence deleted"})
	}
}
