package types

// ChannelOrganic is the fallback acquisition channel assigned to any user for
// whom neither a paid campaign conversion nor a reported ad conversion exists.
const ChannelOrganic = "organic"

// Behavioral event vocabulary shared by the collectors and the event log
// repository. Object types carry a legacy alias because template items were
// renamed in the client without backfilling historical events.
const (
	EventPageView = "page_view"
	EventClick    = "element_click"
	EventCreate   = "work_create_click"
	EventSuccess  = "work_publish_success"
	EventSearch   = "template_search"
	EventRegister = "register"

	PageTypePaywall = "vip_block"

	ObjectTypeTemplateItem       = "template_item"
	ObjectTypeLegacyTemplateItem = "store_template_item"
)
