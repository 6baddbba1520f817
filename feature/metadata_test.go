package feature

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feast"
)

type fakeFeastClient struct {
	features map[string]map[string]interface{} // item_id -> feature -> value
	gotReq   *feast.GetOnlineFeaturesRequest
}

func (f *fakeFeastClient) GetOnlineFeatures(_ context.Context, req *feast.GetOnlineFeaturesRequest) (*feast.GetOnlineFeaturesResponse, error) {
	f.gotReq = req
	resp := &feast.GetOnlineFeaturesResponse{}
	for _, row := range req.EntityRows {
		id, _ := row["item_id"].(string)
		resp.FeatureVectors = append(resp.FeatureVectors, feast.FeatureVector{
			Values:    f.features[id],
			EntityRow: row,
		})
	}
	return resp, nil
}

func (f *fakeFeastClient) Close() error { return nil }

func TestMetadataLoader_Hydrate(t *testing.T) {
	client := &fakeFeastClient{features: map[string]map[string]interface{}{
		"p1": {
			"item_stats:price":  99.5,
			"item_stats:rating": 4.7,
		},
		"p2": {
			"item_stats:price": int64(20),
			// rating 缺失：保持原值
		},
	}}

	items := []*core.Item{core.NewItem("p1"), core.NewItem("p2"), core.NewItem("p3")}
	items[1].Rating = 3.9

	l := &MetadataLoader{Client: client, Project: "shop"}
	if err := l.Hydrate(context.Background(), items); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	if items[0].Price != 99.5 || items[0].Rating != 4.7 {
		t.Errorf("p1 = %v/%v, want 99.5/4.7", items[0].Price, items[0].Rating)
	}
	if items[1].Price != 20 || items[1].Rating != 3.9 {
		t.Errorf("p2 = %v/%v, want 20/3.9 (missing rating untouched)", items[1].Price, items[1].Rating)
	}
	// Feast 无记录的商品保持零值，由 BuildStore 校验兜底
	if items[2].Price != 0 {
		t.Errorf("p3 price = %v, want 0", items[2].Price)
	}

	if client.gotReq.Project != "shop" {
		t.Errorf("request project = %s", client.gotReq.Project)
	}
	if len(client.gotReq.EntityRows) != 3 {
		t.Errorf("entity rows = %d, want 3", len(client.gotReq.EntityRows))
	}
}

func TestMetadataLoader_NilClient(t *testing.T) {
	l := &MetadataLoader{}
	err := l.Hydrate(context.Background(), []*core.Item{core.NewItem("p1")})
	if !core.IsInvalidInput(err) {
		t.Fatalf("Hydrate without client err = %v, want INVALID_INPUT", err)
	}
}
