package services

import (
	"fmt"
	"log"

	"github.com/qualitrack/qualitrack-api/internal/config"
	"github.com/qualitrack/qualitrack-api/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

const requirementsIndex = "requirements"

type SearchService struct {
	client *meilisearch.Client
	index  string
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure requirements index exists (best effort)
	_, err := client.GetIndex(requirementsIndex)
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        requirementsIndex,
			PrimaryKey: "RequirementID",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch requirements index: %v", err)
		}

		_, err = client.Index(requirementsIndex).UpdateFilterableAttributes(&[]string{"EventID", "CriteriaID", "AreaID"})
		if err != nil {
			log.Printf("Failed to update filterable attributes: %v", err)
		}

		_, err = client.Index(requirementsIndex).UpdateSearchableAttributes(&[]string{"RequirementCode", "Description", "CriteriaCode", "CriteriaName", "AreaName"})
		if err != nil {
			log.Printf("Failed to update searchable attributes: %v", err)
		}
	}

	return &SearchService{
		client: client,
		index:  requirementsIndex,
	}
}

func (s *SearchService) IndexRequirement(view models.RequirementView) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.RequirementView{view})
	return err
}

func (s *SearchService) DeleteRequirements(requirementIDs []uint) error {
	docIDs := make([]string, 0, len(requirementIDs))
	for _, id := range requirementIDs {
		docIDs = append(docIDs, fmt.Sprintf("%d", id))
	}
	_, err := s.client.Index(s.index).DeleteDocuments(docIDs)
	return err
}

// SearchRequirements queries the index, optionally filtered to one event.
func (s *SearchService) SearchRequirements(query string, eventID *uint, limit int64) ([]interface{}, error) {
	req := &meilisearch.SearchRequest{
		Limit: limit,
	}
	if eventID != nil {
		req.Filter = fmt.Sprintf("EventID = %d", *eventID)
	}
	res, err := s.client.Index(s.index).Search(query, req)
	if err != nil {
		return nil, err
	}
	return res.Hits, nil
}
