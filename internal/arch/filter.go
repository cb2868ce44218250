package arch

import (
	"github.com/hsgwa/archgraph/internal/reader"
)

// DefaultIgnoreTopics are the housekeeping channels excluded from
// reconstruction unless the caller overrides the list.
var DefaultIgnoreTopics = []string{"/parameter_events", "/rosout", "/clock"}

// topicFilteredReader decorates a raw reader: publishers and
// subscriptions on ignored topics disappear, subscription callbacks on
// ignored topics disappear, and their ids are removed from every
// callback group's membership. Every downstream consumer sees the
// filtered view only.
type topicFilteredReader struct {
	reader.ArchitectureReader
	ignored map[string]struct{}
}

func newTopicFilteredReader(r reader.ArchitectureReader, ignoreTopics []string) *topicFilteredReader {
	ignored := make(map[string]struct{}, len(ignoreTopics))
	for _, topic := range ignoreTopics {
		ignored[topic] = struct{}{}
	}
	return &topicFilteredReader{ArchitectureReader: r, ignored: ignored}
}

func (f *topicFilteredReader) isIgnored(topic string) bool {
	_, ok := f.ignored[topic]
	return ok
}

// ignoredCallbackIDs collects the ids of a node's callbacks subscribed
// to an ignored topic.
func (f *topicFilteredReader) ignoredCallbackIDs(nodeName string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, cb := range f.ArchitectureReader.GetSubscriptionCallbacks(nodeName) {
		if f.isIgnored(cb.SubscribeTopicName) {
			out[cb.ID] = struct{}{}
		}
	}
	return out
}

func (f *topicFilteredReader) GetPublishers(nodeName string) []reader.PublisherRecord {
	var out []reader.PublisherRecord
	for _, rec := range f.ArchitectureReader.GetPublishers(nodeName) {
		if f.isIgnored(rec.TopicName) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (f *topicFilteredReader) GetSubscriptions(nodeName string) []reader.SubscriptionRecord {
	var out []reader.SubscriptionRecord
	for _, rec := range f.ArchitectureReader.GetSubscriptions(nodeName) {
		if f.isIgnored(rec.TopicName) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (f *topicFilteredReader) GetSubscriptionCallbacks(nodeName string) []reader.CallbackRecord {
	var out []reader.CallbackRecord
	for _, rec := range f.ArchitectureReader.GetSubscriptionCallbacks(nodeName) {
		if f.isIgnored(rec.SubscribeTopicName) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (f *topicFilteredReader) GetCallbackGroups(nodeName string) []reader.CallbackGroupRecord {
	dropped := f.ignoredCallbackIDs(nodeName)
	recs := f.ArchitectureReader.GetCallbackGroups(nodeName)

	out := make([]reader.CallbackGroupRecord, 0, len(recs))
	for _, rec := range recs {
		filtered := rec
		filtered.CallbackIDs = nil
		for _, id := range rec.CallbackIDs {
			if _, ok := dropped[id]; ok {
				continue
			}
			filtered.CallbackIDs = append(filtered.CallbackIDs, id)
		}
		out = append(out, filtered)
	}
	return out
}
