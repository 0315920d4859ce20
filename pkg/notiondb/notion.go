package notiondb

import (
	"context"
	"errors"
	"time"

	"github.com/jomei/notionapi"

	"github.com/fleetsync/fleetsync/pkg/util"
)

// databaseQuerier and pageWriter are the slices of the Notion client the
// gateway actually uses, so tests can swap in fakes
type databaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, request *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

type pageWriter interface {
	Create(ctx context.Context, request *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, request *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

type Instance struct {
	Databases  databaseQuerier
	Pages      pageWriter
	DatabaseID notionapi.DatabaseID

	PageCache *PageCache
}

var GlobalInstance *Instance

// Well known dispatcher database of the production workspace
const defaultDatabaseID = "262c3f4a-118b-812c-a535-f0fd1ae50550"

func Connect() error {
	databaseID := defaultDatabaseID

	env := util.GetEnvironmentVariables()

	if env["FLEETSYNC_NOTION_TOKEN"] == "" {
		return errors.New("FLEETSYNC_NOTION_TOKEN must be set")
	}

	if env["FLEETSYNC_NOTION_DATABASE"] != "" {
		databaseID = env["FLEETSYNC_NOTION_DATABASE"]
	}

	client := notionapi.NewClient(notionapi.Token(env["FLEETSYNC_NOTION_TOKEN"]))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Fetching the database doubles as the connection check
	_, err := client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return err
	}

	GlobalInstance = &Instance{
		Databases:  client.Database,
		Pages:      client.Page,
		DatabaseID: notionapi.DatabaseID(databaseID),

		PageCache: NewPageCache(),
	}

	return nil
}
