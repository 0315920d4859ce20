package notiondb

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
)

// fakeDispatcherDB behaves like the dispatcher database - pages with a
// title property, queried by title contains
type fakeDispatcherDB struct {
	pages map[string]notionapi.Properties // page id -> properties

	creates int
	updates int
	queries int
}

func newFakeDispatcherDB() *fakeDispatcherDB {
	return &fakeDispatcherDB{pages: map[string]notionapi.Properties{}}
}

func pageTitle(properties notionapi.Properties) string {
	title, exists := properties[PropertyVehicle].(notionapi.TitleProperty)
	if !exists || len(title.Title) == 0 || title.Title[0].Text == nil {
		return ""
	}

	return title.Title[0].Text.Content
}

func (f *fakeDispatcherDB) Query(ctx context.Context, id notionapi.DatabaseID, request *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.queries += 1

	filter, isProperty := request.Filter.(*notionapi.PropertyFilter)
	if !isProperty || filter.Property != PropertyVehicle || filter.RichText == nil {
		return nil, fmt.Errorf("unexpected filter %+v", request.Filter)
	}

	response := &notionapi.DatabaseQueryResponse{}
	for pageID, properties := range f.pages {
		if strings.Contains(pageTitle(properties), filter.RichText.Contains) {
			response.Results = append(response.Results, notionapi.Page{
				ID:         notionapi.ObjectID(pageID),
				Properties: properties,
			})
		}
	}

	return response, nil
}

func (f *fakeDispatcherDB) Create(ctx context.Context, request *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.creates += 1

	pageID := fmt.Sprintf("page-%d", len(f.pages)+1)
	f.pages[pageID] = request.Properties

	return &notionapi.Page{ID: notionapi.ObjectID(pageID), Properties: request.Properties}, nil
}

func (f *fakeDispatcherDB) Update(ctx context.Context, id notionapi.PageID, request *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	f.updates += 1

	pageID := id.String()
	if _, exists := f.pages[pageID]; !exists {
		return nil, fmt.Errorf("page %s does not exist", pageID)
	}
	f.pages[pageID] = request.Properties

	return &notionapi.Page{ID: notionapi.ObjectID(pageID), Properties: request.Properties}, nil
}

func testInstance(db *fakeDispatcherDB) *Instance {
	return &Instance{
		Databases:  db,
		Pages:      db,
		DatabaseID: notionapi.DatabaseID("test-database"),
	}
}

func vehicleProperties(vehicleName string) notionapi.Properties {
	return notionapi.Properties{
		PropertyVehicle: titleProperty(vehicleName),
	}
}

func TestUpsertCreatesWhenAbsent(t *testing.T) {
	db := newFakeDispatcherDB()
	instance := testInstance(db)

	err := instance.UpsertVehicle(context.Background(), "B-TR 1234", vehicleProperties("B-TR 1234"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.creates != 1 || db.updates != 0 {
		t.Errorf("expected 1 create and 0 updates, got %d/%d", db.creates, db.updates)
	}
}

func TestUpsertUpdatesWhenPresent(t *testing.T) {
	db := newFakeDispatcherDB()
	db.pages["page-1"] = vehicleProperties("B-TR 1234")

	instance := testInstance(db)

	err := instance.UpsertVehicle(context.Background(), "B-TR 1234", vehicleProperties("B-TR 1234"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.creates != 0 || db.updates != 1 {
		t.Errorf("expected 0 creates and 1 update, got %d/%d", db.creates, db.updates)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := newFakeDispatcherDB()
	instance := testInstance(db)

	// Two passes over an unchanged fleet must end with exactly one entry
	for i := 0; i < 2; i++ {
		err := instance.UpsertVehicle(context.Background(), "B-TR 1234", vehicleProperties("B-TR 1234"))
		if err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i+1, err)
		}
	}

	if len(db.pages) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(db.pages))
	}
	if db.creates != 1 || db.updates != 1 {
		t.Errorf("expected 1 create then 1 update, got %d/%d", db.creates, db.updates)
	}
}

func TestUpsertMatchesOnTitleSubstring(t *testing.T) {
	db := newFakeDispatcherDB()
	db.pages["page-1"] = vehicleProperties("🚛 B-TR 1234 (Jonas)")

	instance := testInstance(db)

	err := instance.UpsertVehicle(context.Background(), "B-TR 1234", vehicleProperties("B-TR 1234"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.creates != 0 || db.updates != 1 {
		t.Errorf("expected the decorated title to match by substring, got %d creates", db.creates)
	}
}

func TestFindEntryReturnsNilWhenMissing(t *testing.T) {
	instance := testInstance(newFakeDispatcherDB())

	page, err := instance.FindEntry(context.Background(), "ZZ-XX 9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != nil {
		t.Errorf("expected nil, got %+v", page)
	}
}
