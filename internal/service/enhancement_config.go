package service

import (
	"os"
	"strings"

	"github.com/bombershop-next/internal/models"

	"github.com/spf13/viper"
)

// EnhancementPreset 静态配置中的商品增强内容模板
type EnhancementPreset struct {
	ExternalID               string                 `mapstructure:"external_id"`
	Description              string                 `mapstructure:"description"`
	ShortDescription         string                 `mapstructure:"short_description"`
	Features                 []string               `mapstructure:"features"`
	Specs                    map[string]interface{} `mapstructure:"specs"`
	AdditionalImages         []string               `mapstructure:"additional_images"`
	SeoMeta                  map[string]interface{} `mapstructure:"seo_meta"`
	DefaultVariantExternalID string                 `mapstructure:"default_variant_external_id"`
}

// EnhancementConfig 以 externalId 为键的只读增强内容配置，进程启动时加载一次
type EnhancementConfig struct {
	presets map[string]EnhancementPreset
}

// LoadEnhancementConfig 从 YAML 文件加载增强内容配置。
// 文件不存在视为空配置，不报错。
func LoadEnhancementConfig(path string) (*EnhancementConfig, error) {
	cfg := &EnhancementConfig{presets: make(map[string]EnhancementPreset)}

	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var file struct {
		Enhancements []EnhancementPreset `mapstructure:"enhancements"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, err
	}

	for _, preset := range file.Enhancements {
		externalID := strings.TrimSpace(preset.ExternalID)
		if externalID == "" {
			continue
		}
		preset.ExternalID = externalID
		cfg.presets[externalID] = preset
	}
	return cfg, nil
}

// GetByExternalID 查询增强内容模板，未配置返回 nil
func (c *EnhancementConfig) GetByExternalID(externalID string) *EnhancementPreset {
	if c == nil {
		return nil
	}
	preset, ok := c.presets[externalID]
	if !ok {
		return nil
	}
	return &preset
}

// Len 配置条目数
func (c *EnhancementConfig) Len() int {
	if c == nil {
		return 0
	}
	return len(c.presets)
}

// BuildEnhancement 由模板生成归属指定商品的增强内容记录
func (p *EnhancementPreset) BuildEnhancement(productID uint) *models.Enhancement {
	if p == nil {
		return nil
	}
	return &models.Enhancement{
		ProductID:                productID,
		Description:              p.Description,
		ShortDescription:         p.ShortDescription,
		Features:                 models.StringArray(p.Features),
		Specs:                    models.JSON(p.Specs),
		AdditionalImages:         models.StringArray(p.AdditionalImages),
		SeoMeta:                  models.JSON(p.SeoMeta),
		DefaultVariantExternalID: p.DefaultVariantExternalID,
	}
}
