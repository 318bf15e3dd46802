package generator

// template is the canned copy the simulator streams for one language.
type template struct {
	Description         string
	TechnicalSpec       string
	MarketingHighlights string
}

func (t template) text(sec Section) string {
	switch sec {
	case SectionDescription:
		return t.Description
	case SectionTechnicalSpec:
		return t.TechnicalSpec
	case SectionMarketingHighlights:
		return t.MarketingHighlights
	}
	return ""
}

var templates = map[string]template{
	"English": {
		Description:         "Experience the future of smart living with our revolutionary product...",
		TechnicalSpec:       "- Advanced AI Processing\n- 5nm Architecture\n- 16GB RAM\n- Neural Engine",
		MarketingHighlights: "🚀 Revolutionary Performance\n💡 Intelligent Adaptation\n🌟 Seamless Integration",
	},
	"MandarinChinese": {
		Description:         "体验未来智能生活，我们的革命性产品...",
		TechnicalSpec:       "- 高级AI处理\n- 5nm架构\n- 16GB RAM\n- 神经引擎",
		MarketingHighlights: "🚀 革命性性能\n💡 智能适应\n🌟 无缝集成",
	},
	"Hindi": {
		Description:         "हमारे विशेष उत्पाद के साथ आगे की जीवन शैली में अनुभव करें...",
		TechnicalSpec:       "- उन्नत AI प्रक्रिया\n- 5nm संरचना\n- 16GB RAM\n- न्यूरल इंजन",
		MarketingHighlights: "🚀 विशेष प्रदर्शन\n💡 बुद्धिमान अनुकूलन\n🌟 समग्र इंटीग्रेशन",
	},
	"Spanish": {
		Description:         "Experimente el futuro de la vida inteligente con nuestro producto revolucionario...",
		TechnicalSpec:       "- Procesamiento AI Avanzado\n- Arquitectura 5nm\n- 16GB RAM\n- Motor Neural",
		MarketingHighlights: "🚀 Rendimiento Revolucionario\n💡 Adaptación Inteligente\n🌟 Integración Perfecta",
	},
	"French": {
		Description:         "Découvrez le futur de la vie intelligente avec notre produit révolutionnaire...",
		TechnicalSpec:       "- Traitement IA Avancé\n- Architecture 5nm\n- 16GB RAM\n- Moteur Neuronal",
		MarketingHighlights: "🚀 Performance Révolutionnaire\n💡 Adaptation Intelligente\n🌟 Intégration Parfaite",
	},
	"Arabic": {
		Description:         "استكشف المستقبل الذكي مع منتجنا المثير...",
		TechnicalSpec:       "- معالجة AI متقدمة\n- بنية 5nm\n- 16GB RAM\n- محرك نيورون",
		MarketingHighlights: "🚀 أداء مثير\n💡 تكييف مع الذكاء\n🌟 تكامل مثالي",
	},
	"Bengali": {
		Description:         "আমাদের বিশেষ পণ্যের সাথে আগের জীবন সিদ্ধান্ত নিন...",
		TechnicalSpec:       "- উন্নত AI প্রক্রিয়া\n- 5nm সংরচনা\n- 16GB RAM\n- নিউরাল ইঞ্জিন",
		MarketingHighlights: "🚀 বিশেষ প্রদর্শন\n💡 বুদ্ধিমান অনুকূলন\n🌟 সমগ্র ইংটিগ্রেশন",
	},
	"Portuguese": {
		Description:         "Descubra o futuro da vida inteligente com nosso produto revolucionário...",
		TechnicalSpec:       "- Processamento IA Avançado\n- Arquitetura 5nm\n- 16GB RAM\n- Motor Neural",
		MarketingHighlights: "🚀 Desempenho Revolucionário\n💡 Adaptabilidade Inteligente\n🌟 Integração Perfeita",
	},
	"Russian": {
		Description:         "Исследуйте будущее интеллектуальной жизни с нашим революционным продуктом...",
		TechnicalSpec:       "- Расширенная обработка AI\n- Архитектура 5nm\n- 16GB RAM\n- Нейронный двигатель",
		MarketingHighlights: "🚀 Революционные характеристики\n💡 Интеллектуальное адаптирование\n🌟 Идеальное интегрирование",
	},
	"Japanese": {
		Description:         "未来のスマートライフを体験してください。我々の革命的な製品で。",
		TechnicalSpec:       "- 高度なAI処理\n- 5nmアーキテクチャ\n- 16GB RAM\n- ニューラルエンジン",
		MarketingHighlights: "🚀 革命的性能\n💡 スマート適応\n🌟 スムーズ統合",
	},
}
