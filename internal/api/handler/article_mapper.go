package handler

import (
	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		CoverURL:    a.CoverURL,
		PublisherID: a.PublisherID,
		AuthorID:    a.AuthorID,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		ApprovedAt:  a.ApprovedAt,
	}
}

func toArticleListResponse(articles []*domain.Article) articleListResponse {
	items := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, toArticleResponse(a))
	}
	return articleListResponse{Items: items, Count: len(items)}
}
