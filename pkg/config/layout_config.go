package config

// 布局配置常量
// 本文件定义了窗口外壳的布局参数，包括棋盘区域、侧边栏等
// 引擎本身不依赖这些常量

// Board Area Configuration (棋盘区域配置)
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 800

	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 600

	// BoardMargin 棋盘区域四周留白（像素）
	BoardMargin = 16.0

	// BoardAreaRatio 棋盘区域占屏幕宽度的比例（剩余部分为侧边栏）
	BoardAreaRatio = 0.7

	// TitleHeight 标题栏高度（像素）
	TitleHeight = 24.0

	// CellFillRatio 格子矩形占格子尺寸的比例，剩余部分为间隙
	CellFillRatio = 0.85
)

// Side Panel Configuration (侧边栏配置)
const (
	// HandPanelRatio 手牌列表占侧边栏高度的比例
	HandPanelRatio = 0.6

	// StatsPanelRatio 属性面板占侧边栏高度的比例
	StatsPanelRatio = 0.2

	// LineHeight 文本行高（像素，ebitenutil 调试字体）
	LineHeight = 16

	// DebugCharWidth 调试字体的字符宽度（像素）
	DebugCharWidth = 6

	// HighlightSymbol 手牌高亮前缀
	HighlightSymbol = ">>  "
)

// Highlight Configuration (高亮配置)
const (
	// DefaultExpiringThreshold 剩余回合数小于该值时高亮为"即将成熟"
	DefaultExpiringThreshold = 3
)

// GetBoardArea 返回棋盘区域的屏幕坐标
// 返回值：x, y, width, height
func GetBoardArea() (float64, float64, float64, float64) {
	x := BoardMargin
	y := BoardMargin + TitleHeight
	w := float64(ScreenWidth)*BoardAreaRatio - 2*BoardMargin
	h := float64(ScreenHeight) - y - BoardMargin
	return x, y, w, h
}

// GetSidePanelArea 返回侧边栏的屏幕坐标
// 返回值：x, y, width, height
func GetSidePanelArea() (float64, float64, float64, float64) {
	x := float64(ScreenWidth) * BoardAreaRatio
	y := BoardMargin
	w := float64(ScreenWidth) - x - BoardMargin
	h := float64(ScreenHeight) - 2*BoardMargin
	return x, y, w, h
}
