package survey

import "github.com/daytrip-ai/daytrip-server/internal/types"

// StartNodeID is the root of the question graph.
const StartNodeID = "start"

// TotalQuestions is the fixed depth of every root-to-leaf path. Used only for
// progress reporting.
const TotalQuestions = 8

// Questions is the survey decision tree. Nodes are static and immutable; the
// second question is branch-specific, after which all paths converge on the
// shared tail (pace, budget, companion, photo, time_preference,
// weather_priority).
var Questions = map[string]types.QuestionNode{
	"start": {
		ID:     "start",
		Prompt: "여행에서 가장 중요한 것은?",
		Emoji:  "🎯",
		Options: []types.SurveyOption{
			{Label: "힐링과 휴식", Emoji: "🧘", Value: "healing", NextID: "healing_depth",
				Score: map[types.Dimension]int{types.DimHealing: 3, types.DimNature: 2}},
			{Label: "새로운 경험과 모험", Emoji: "🏔️", Value: "adventure", NextID: "adventure_type",
				Score: map[types.Dimension]int{types.DimAdventure: 3, types.DimActive: 2}},
			{Label: "맛집과 음식", Emoji: "🍜", Value: "food", NextID: "food_style",
				Score: map[types.Dimension]int{types.DimFoodie: 3, types.DimCulture: 1}},
			{Label: "문화와 역사 탐방", Emoji: "🏛️", Value: "culture", NextID: "culture_depth",
				Score: map[types.Dimension]int{types.DimCulture: 3, types.DimLearning: 2}},
		},
	},
	"healing_depth": {
		ID:     "healing_depth",
		Prompt: "어떤 방식으로 힐링하고 싶나요?",
		Emoji:  "🌿",
		Options: []types.SurveyOption{
			{Label: "자연 속에서 조용히", Emoji: "🏞️", Value: "nature", NextID: "pace",
				Score: map[types.Dimension]int{types.DimNature: 3, types.DimHealing: 2}},
			{Label: "스파/온천에서", Emoji: "♨️", Value: "spa", NextID: "pace",
				Score: map[types.Dimension]int{types.DimHealing: 3, types.DimLuxury: 2}},
			{Label: "카페 투어", Emoji: "☕", Value: "cafe", NextID: "pace",
				Score: map[types.Dimension]int{types.DimHealing: 2, types.DimCulture: 1, types.DimFoodie: 1}},
			{Label: "해변에서 여유롭게", Emoji: "🏖️", Value: "beach", NextID: "pace",
				Score: map[types.Dimension]int{types.DimHealing: 2, types.DimNature: 2}},
		},
	},
	"adventure_type": {
		ID:     "adventure_type",
		Prompt: "어떤 모험을 원하시나요?",
		Emoji:  "⚡",
		Options: []types.SurveyOption{
			{Label: "등산/트레킹", Emoji: "🥾", Value: "hiking", NextID: "pace",
				Score: map[types.Dimension]int{types.DimAdventure: 3, types.DimActive: 3, types.DimNature: 2}},
			{Label: "수상 액티비티", Emoji: "🏄", Value: "water", NextID: "pace",
				Score: map[types.Dimension]int{types.DimAdventure: 3, types.DimActive: 3}},
			{Label: "익스트림 스포츠", Emoji: "🪂", Value: "extreme", NextID: "pace",
				Score: map[types.Dimension]int{types.DimAdventure: 4, types.DimActive: 4}},
			{Label: "도심 탐험", Emoji: "🏙️", Value: "urban", NextID: "pace",
				Score: map[types.Dimension]int{types.DimAdventure: 2, types.DimCulture: 2}},
		},
	},
	"food_style": {
		ID:     "food_style",
		Prompt: "어떤 음식 여행을 원하시나요?",
		Emoji:  "🍽️",
		Options: []types.SurveyOption{
			{Label: "현지 전통 음식", Emoji: "🥘", Value: "traditional", NextID: "pace",
				Score: map[types.Dimension]int{types.DimFoodie: 3, types.DimCulture: 2}},
			{Label: "파인다이닝", Emoji: "🍷", Value: "fine_dining", NextID: "pace",
				Score: map[types.Dimension]int{types.DimFoodie: 3, types.DimLuxury: 3}},
			{Label: "길거리 음식", Emoji: "🌮", Value: "street_food", NextID: "pace",
				Score: map[types.Dimension]int{types.DimFoodie: 3, types.DimAdventure: 1}},
			{Label: "카페/디저트", Emoji: "🍰", Value: "dessert", NextID: "pace",
				Score: map[types.Dimension]int{types.DimFoodie: 2, types.DimHealing: 1}},
		},
	},
	"culture_depth": {
		ID:     "culture_depth",
		Prompt: "문화 탐방 스타일은?",
		Emoji:  "🎨",
		Options: []types.SurveyOption{
			{Label: "박물관/미술관 집중", Emoji: "🖼️", Value: "museum", NextID: "pace",
				Score: map[types.Dimension]int{types.DimCulture: 3, types.DimLearning: 3}},
			{Label: "역사 유적지 탐방", Emoji: "🏯", Value: "historical", NextID: "pace",
				Score: map[types.Dimension]int{types.DimCulture: 3, types.DimLearning: 2}},
			{Label: "현지 공연/축제", Emoji: "🎭", Value: "performance", NextID: "pace",
				Score: map[types.Dimension]int{types.DimCulture: 3, types.DimAdventure: 1}},
			{Label: "전통 마을 체험", Emoji: "🏘️", Value: "village", NextID: "pace",
				Score: map[types.Dimension]int{types.DimCulture: 3, types.DimHealing: 1}},
		},
	},
	"pace": {
		ID:     "pace",
		Prompt: "여행 일정 스타일은?",
		Emoji:  "⏰",
		Options: []types.SurveyOption{
			{Label: "빡빡하게 많이 다니기", Emoji: "🏃", Value: "fast", NextID: "budget",
				Score: map[types.Dimension]int{types.DimActive: 2}},
			{Label: "여유롭게 천천히", Emoji: "🚶", Value: "slow", NextID: "budget",
				Score: map[types.Dimension]int{types.DimHealing: 2}},
			{Label: "중간 정도", Emoji: "🚶‍♂️", Value: "medium", NextID: "budget"},
		},
	},
	"budget": {
		ID:     "budget",
		Prompt: "하루 예산은 얼마인가요?",
		Emoji:  "💰",
		Options: []types.SurveyOption{
			{Label: "5만원 이하 (알뜰)", Emoji: "🪙", Value: "low", NextID: "companion"},
			{Label: "5~15만원 (적당)", Emoji: "💵", Value: "medium", NextID: "companion"},
			{Label: "15만원 이상 (럭셔리)", Emoji: "💎", Value: "high", NextID: "companion",
				Score: map[types.Dimension]int{types.DimLuxury: 2}},
		},
	},
	"companion": {
		ID:     "companion",
		Prompt: "누구와 여행하시나요?",
		Emoji:  "👥",
		Options: []types.SurveyOption{
			{Label: "혼자 (나홀로)", Emoji: "🧍", Value: "solo", NextID: "photo",
				Score: map[types.Dimension]int{types.DimHealing: 1}},
			{Label: "연인/배우자", Emoji: "💑", Value: "couple", NextID: "photo"},
			{Label: "가족", Emoji: "👨‍👩‍👧‍👦", Value: "family", NextID: "photo"},
			{Label: "친구", Emoji: "👯", Value: "friends", NextID: "photo",
				Score: map[types.Dimension]int{types.DimActive: 1}},
		},
	},
	"photo": {
		ID:     "photo",
		Prompt: "사진 촬영에 관심이 있나요?",
		Emoji:  "📸",
		Options: []types.SurveyOption{
			{Label: "매우 중요! 인생샷 필수", Emoji: "📷", Value: "important", NextID: "time_preference",
				Score: map[types.Dimension]int{types.DimCulture: 1}},
			{Label: "그냥 간단히만", Emoji: "📱", Value: "casual", NextID: "time_preference"},
			{Label: "별로 안 찍음", Emoji: "🙅", Value: "not_important", NextID: "time_preference",
				Score: map[types.Dimension]int{types.DimHealing: 1}},
		},
	},
	"time_preference": {
		ID:     "time_preference",
		Prompt: "선호하는 여행 시간대는?",
		Emoji:  "🕐",
		Options: []types.SurveyOption{
			{Label: "이른 아침 시작", Emoji: "🌅", Value: "morning", NextID: "weather_priority",
				Score: map[types.Dimension]int{types.DimActive: 2, types.DimNature: 1}},
			{Label: "여유있는 오전~오후", Emoji: "☀️", Value: "daytime", NextID: "weather_priority"},
			{Label: "저녁~밤 분위기", Emoji: "🌃", Value: "night", NextID: "weather_priority",
				Score: map[types.Dimension]int{types.DimCulture: 1, types.DimFoodie: 1}},
			{Label: "상관없음", Emoji: "🔄", Value: "flexible", NextID: "weather_priority"},
		},
	},
	"weather_priority": {
		ID:     "weather_priority",
		Prompt: "날씨가 여행 계획에 얼마나 중요한가요?",
		Emoji:  "⛅",
		Options: []types.SurveyOption{
			{Label: "매우 중요 (맑은 날만)", Emoji: "☀️", Value: "very_important",
				Score: map[types.Dimension]int{types.DimNature: 1}},
			{Label: "비만 안 오면 됨", Emoji: "🌤️", Value: "moderate"},
			{Label: "별로 중요하지 않음", Emoji: "🌦️", Value: "not_important",
				Score: map[types.Dimension]int{types.DimAdventure: 1}},
		},
	},
}

// StyleProfile describes one travel style for the finalized result.
type StyleProfile struct {
	Name        string
	Description string
	Keywords    []string
}

// StyleProfiles maps each scoring dimension to its display profile.
var StyleProfiles = map[types.Dimension]StyleProfile{
	types.DimHealing: {
		Name:        "힐링 여행자",
		Description: "여유로운 휴식과 재충전을 추구하는 당신! 자연과 평온함 속에서 진정한 쉼을 찾습니다.",
		Keywords:    []string{"휴식", "자연", "카페", "온천", "여유"},
	},
	types.DimAdventure: {
		Name:        "모험 여행자",
		Description: "스릴과 새로운 경험을 즐기는 당신! 도전과 모험이 가득한 여행을 선호합니다.",
		Keywords:    []string{"액티비티", "등산", "익스트림", "탐험", "도전"},
	},
	types.DimFoodie: {
		Name:        "미식 여행자",
		Description: "음식이 여행의 중심인 당신! 맛집 탐방과 현지 음식 체험을 가장 중요하게 생각합니다.",
		Keywords:    []string{"맛집", "현지음식", "미식", "요리", "카페"},
	},
	types.DimCulture: {
		Name:        "문화 탐방자",
		Description: "역사와 문화를 깊이 이해하고 싶은 당신! 박물관, 유적지 탐방을 즐깁니다.",
		Keywords:    []string{"박물관", "역사", "전통", "문화재", "예술"},
	},
	types.DimNature: {
		Name:        "자연 애호가",
		Description: "자연 속에서 평화를 찾는 당신! 산, 바다, 숲 등 자연 경관을 최우선으로 합니다.",
		Keywords:    []string{"자연", "트레킹", "해변", "국립공원", "풍경"},
	},
	types.DimActive: {
		Name:        "액티브 여행자",
		Description: "활동적이고 에너제틱한 당신! 많은 곳을 다니며 다양한 활동을 즐깁니다.",
		Keywords:    []string{"활동적", "스포츠", "다이나믹", "체험", "운동"},
	},
	types.DimLuxury: {
		Name:        "럭셔리 여행자",
		Description: "품격 있고 특별한 경험을 원하는 당신! 프리미엄 여행을 선호합니다.",
		Keywords:    []string{"럭셔리", "프리미엄", "파인다이닝", "호텔", "특별한경험"},
	},
	types.DimLearning: {
		Name:        "학습형 여행자",
		Description: "여행을 통해 배우고 성장하는 당신! 교육적이고 의미있는 경험을 추구합니다.",
		Keywords:    []string{"학습", "교육", "체험", "워크샵", "전문가투어"},
	},
}
