package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options 是引擎可调参数的配置结构（YAML）。
// 零值字段不覆盖引擎现值，缺省项沿用 core.EngineConfig 默认。
type Options struct {
	Engine struct {
		SimilarUsers    int     `yaml:"similar_users"`
		TopCategories   int     `yaml:"top_categories"`
		OverfetchFactor int     `yaml:"overfetch_factor"`
		RatingThreshold float64 `yaml:"rating_threshold"`
	} `yaml:"engine"`
}

// LoadOptions 从 YAML 文件加载引擎参数。
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &opts, nil
}

// Apply 把非零参数写到引擎上。
func (o *Options) Apply(e *Engine) {
	if e == nil {
		return
	}
	if o.Engine.SimilarUsers > 0 {
		e.SimilarUsers = o.Engine.SimilarUsers
	}
	if o.Engine.TopCategories > 0 {
		e.TopCategories = o.Engine.TopCategories
	}
	if o.Engine.OverfetchFactor > 0 {
		e.OverfetchFactor = o.Engine.OverfetchFactor
	}
	if o.Engine.RatingThreshold > 0 {
		e.RatingThreshold = o.Engine.RatingThreshold
	}
}
