package api

import (
	"github.com/linkhub-io/linkhub/app/aggregate"
	"github.com/linkhub-io/linkhub/app/record"
)

type Handler struct {
	aggregator *aggregate.Aggregator
	sites      *record.Store[record.SiteRecord]
	categories *record.Store[record.CategoryRecord]
}
