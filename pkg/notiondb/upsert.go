package notiondb

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog/log"
)

// FindEntry looks up an existing dispatcher entry whose title contains
// the vehicle name. First match wins when several do. The rich_text
// condition applies to title properties as well
func (instance *Instance) FindEntry(ctx context.Context, vehicleName string) (*notionapi.Page, error) {
	response, err := instance.Databases.Query(ctx, instance.DatabaseID, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: PropertyVehicle,
			RichText: &notionapi.TextFilterCondition{
				Contains: vehicleName,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(response.Results) == 0 {
		return nil, nil
	}

	return &response.Results[0], nil
}

func (instance *Instance) updatePage(ctx context.Context, pageID string, properties notionapi.Properties) error {
	_, err := instance.Pages.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: properties,
	})

	return err
}

// UpsertVehicle updates the existing dispatcher entry for the vehicle or
// creates one when none exists yet. At most one entry per vehicle
// identity - a second pass over an unchanged fleet updates, never
// duplicates
func (instance *Instance) UpsertVehicle(ctx context.Context, vehicleName string, properties notionapi.Properties) error {
	if pageID, cached := instance.PageCache.Get(ctx, vehicleName); cached {
		err := instance.updatePage(ctx, pageID, properties)
		if err == nil {
			log.Debug().Str("vehicle", vehicleName).Msg("Updated dispatcher entry")

			return nil
		}

		// Cached page may have been archived or deleted, retry with a
		// fresh lookup
		log.Debug().Err(err).Str("vehicle", vehicleName).Msg("Cached page rejected, falling back to lookup")
	}

	existing, err := instance.FindEntry(ctx, vehicleName)
	if err != nil {
		return err
	}

	if existing != nil {
		pageID := existing.ID.String()

		if err := instance.updatePage(ctx, pageID, properties); err != nil {
			return err
		}

		instance.PageCache.Set(ctx, vehicleName, pageID)

		log.Debug().Str("vehicle", vehicleName).Msg("Updated dispatcher entry")

		return nil
	}

	page, err := instance.Pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: instance.DatabaseID,
		},
		Properties: properties,
	})
	if err != nil {
		return err
	}

	instance.PageCache.Set(ctx, vehicleName, page.ID.String())

	log.Debug().Str("vehicle", vehicleName).Msg("Created dispatcher entry")

	return nil
}
