package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every system and renderer attaches to.
const Default ecs.LayerID = 0
