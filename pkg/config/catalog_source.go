package config

import (
	"fmt"

	"github.com/decker502/forest/pkg/embedded"
)

// EmbeddedCatalogPath 嵌入的默认物种目录
const EmbeddedCatalogPath = "data/plants.yaml"

// 目录来源标识
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceEmbedded = "embedded:" + EmbeddedCatalogPath
)

// ResolveCatalogConfig 按优先级加载物种目录
//
// 优先级：
//  1. path 非空：从文件加载，失败直接返回错误（不回退）
//  2. 嵌入资源中存在 data/plants.yaml：解析嵌入目录
//  3. 内置默认目录
//
// 返回：
//   - *CatalogConfig: 校验后的目录配置
//   - string: 来源（文件路径、CatalogSourceEmbedded 或 CatalogSourceBuiltin）
//   - error: 加载或校验失败
func ResolveCatalogConfig(path string) (*CatalogConfig, string, error) {
	if path != "" {
		cfg, err := LoadSpeciesConfig(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}

	if embedded.Exists(EmbeddedCatalogPath) {
		data, err := embedded.ReadFile(EmbeddedCatalogPath)
		if err != nil {
			return nil, CatalogSourceEmbedded, fmt.Errorf("failed to read embedded catalog: %w", err)
		}
		cfg, err := ParseSpeciesConfig(data)
		if err != nil {
			return nil, CatalogSourceEmbedded, fmt.Errorf("embedded catalog: %w", err)
		}
		return cfg, CatalogSourceEmbedded, nil
	}

	return DefaultCatalogConfig(), CatalogSourceBuiltin, nil
}
