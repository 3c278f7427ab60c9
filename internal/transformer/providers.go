package transformer

// Thinking formatters register themselves on import.
import (
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/claude"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/iflow"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/kimi"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/openai"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/zai"
)
