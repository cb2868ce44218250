// Package yamlarch loads an architecture description written in YAML
// into reader records. The format nests everything under a node list:
// callbacks carry their kind inline, publishers and subscriptions
// reference callbacks by name, and named paths declare a node chain
// with the topics between hops.
package yamlarch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hsgwa/archgraph/internal/ctxlog"
	"github.com/hsgwa/archgraph/internal/reader"
)

// Loader parses YAML architecture files.
type Loader struct{}

// NewLoader creates a new YAML architecture loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses one YAML architecture file. Decoding is strict: unknown
// keys fail the load.
func (l *Loader) Load(ctx context.Context, path string) (*reader.Static, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML architecture loader started.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading architecture file: %w", err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding architecture file %s: %w", path, err)
	}

	out, err := l.translate(&doc)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", path, err)
	}
	logger.Debug("YAML architecture loading complete.",
		"nodes", len(out.Nodes),
		"executors", len(out.Executors),
		"paths", len(out.Paths))
	return out, nil
}

// document is the file-level YAML shape.
type document struct {
	NamedPaths []yamlPath     `yaml:"named_paths"`
	Executors  []yamlExecutor `yaml:"executors"`
	Nodes      []yamlNode     `yaml:"nodes"`
	TfFrames   []yamlFrame    `yaml:"tf_frames"`
}

type yamlPath struct {
	PathName  string         `yaml:"path_name"`
	NodeChain []yamlPathNode `yaml:"node_chain"`
}

type yamlPathNode struct {
	NodeName           string `yaml:"node_name"`
	SubscribeTopicName string `yaml:"subscribe_topic_name"`
	PublishTopicName   string `yaml:"publish_topic_name"`
}

type yamlExecutor struct {
	ExecutorName       string   `yaml:"executor_name"`
	ExecutorType       string   `yaml:"executor_type"`
	CallbackGroupNames []string `yaml:"callback_group_names"`
}

type yamlNode struct {
	NodeName         string            `yaml:"node_name"`
	Callbacks        []yamlCallback    `yaml:"callbacks"`
	CallbackGroups   []yamlGroup       `yaml:"callback_groups"`
	VariablePassings []yamlPassing     `yaml:"variable_passings"`
	Publishes        []yamlPublish     `yaml:"publishes"`
	Subscribes       []yamlSubscribe   `yaml:"subscribes"`
	MessageContexts  []yamlContext     `yaml:"message_contexts"`
	TfBroadcaster    *yamlBroadcaster  `yaml:"tf_broadcaster"`
	TfBuffer         *yamlBuffer       `yaml:"tf_buffer"`
}

type yamlCallback struct {
	CallbackName string `yaml:"callback_name"`
	CallbackType string `yaml:"callback_type"`
	Symbol       string `yaml:"symbol"`
	TopicName    string `yaml:"topic_name"`
	PeriodNS     int64  `yaml:"period_ns"`
}

type yamlGroup struct {
	CallbackGroupName string   `yaml:"callback_group_name"`
	CallbackGroupType string   `yaml:"callback_group_type"`
	CallbackNames     []string `yaml:"callback_names"`
}

type yamlPassing struct {
	CallbackNameWrite string `yaml:"callback_name_write"`
	CallbackNameRead  string `yaml:"callback_name_read"`
}

type yamlPublish struct {
	TopicName     string   `yaml:"topic_name"`
	CallbackNames []string `yaml:"callback_names"`
}

type yamlSubscribe struct {
	TopicName    string `yaml:"topic_name"`
	CallbackName string `yaml:"callback_name"`
}

type yamlContext struct {
	ContextType           string `yaml:"context_type"`
	SubscriptionTopicName string `yaml:"subscription_topic_name"`
	PublisherTopicName    string `yaml:"publisher_topic_name"`
	BroadcastFrameID      string `yaml:"broadcast_frame_id"`
	BroadcastChildFrameID string `yaml:"broadcast_child_frame_id"`
	LookupFrameID         string `yaml:"lookup_frame_id"`
	LookupChildFrameID    string `yaml:"lookup_child_frame_id"`
}

type yamlBroadcaster struct {
	Transforms    []yamlFrame `yaml:"transforms"`
	CallbackNames []string    `yaml:"callback_names"`
}

type yamlBuffer struct {
	ListenTransforms []yamlFrame `yaml:"listen_transforms"`
	LookupTransforms []yamlFrame `yaml:"lookup_transforms"`
}

type yamlFrame struct {
	FrameID      string `yaml:"frame_id"`
	ChildFrameID string `yaml:"child_frame_id"`
}

// translate converts the decoded document into reader records.
// Callback names double as callback ids: the YAML format references
// callbacks by name everywhere.
func (l *Loader) translate(doc *document) (*reader.Static, error) {
	out := &reader.Static{}

	for _, n := range doc.Nodes {
		out.Nodes = append(out.Nodes, reader.NodeRecord{Name: n.NodeName})

		// Publish topics per callback, derived from the publish lists.
		publishTopics := make(map[string][]string)
		for _, pub := range n.Publishes {
			for _, cbName := range pub.CallbackNames {
				publishTopics[cbName] = append(publishTopics[cbName], pub.TopicName)
			}
		}

		for _, cb := range n.Callbacks {
			rec := reader.CallbackRecord{
				NodeName:          n.NodeName,
				ID:                cb.CallbackName,
				Name:              cb.CallbackName,
				Symbol:            cb.Symbol,
				PublishTopicNames: publishTopics[cb.CallbackName],
			}
			switch cb.CallbackType {
			case "timer_callback":
				rec.Period = time.Duration(cb.PeriodNS) * time.Nanosecond
				out.TimerCallbacks = append(out.TimerCallbacks, rec)
				if rec.Period > 0 {
					out.Timers = append(out.Timers, reader.TimerRecord{
						NodeName:   n.NodeName,
						Period:     rec.Period,
						CallbackID: rec.ID,
					})
				}
			case "subscription_callback":
				rec.SubscribeTopicName = cb.TopicName
				out.SubscriptionCallbacks = append(out.SubscriptionCallbacks, rec)
			default:
				return nil, fmt.Errorf("node %q: unknown callback_type %q",
					n.NodeName, cb.CallbackType)
			}
		}

		for _, g := range n.CallbackGroups {
			out.CallbackGroups = append(out.CallbackGroups, reader.CallbackGroupRecord{
				NodeName:    n.NodeName,
				Name:        g.CallbackGroupName,
				Kind:        g.CallbackGroupType,
				CallbackIDs: g.CallbackNames,
			})
		}
		for _, vp := range n.VariablePassings {
			out.VariablePassings = append(out.VariablePassings, reader.VariablePassingRecord{
				NodeName:          n.NodeName,
				WriteCallbackName: vp.CallbackNameWrite,
				ReadCallbackName:  vp.CallbackNameRead,
			})
		}
		for _, pub := range n.Publishes {
			out.Publishers = append(out.Publishers, reader.PublisherRecord{
				NodeName:    n.NodeName,
				TopicName:   pub.TopicName,
				CallbackIDs: pub.CallbackNames,
			})
		}
		for _, sub := range n.Subscribes {
			out.Subscriptions = append(out.Subscriptions, reader.SubscriptionRecord{
				NodeName:   n.NodeName,
				TopicName:  sub.TopicName,
				CallbackID: sub.CallbackName,
			})
		}
		for _, mc := range n.MessageContexts {
			out.MessageContexts = append(out.MessageContexts, reader.MessageContextRecord{
				NodeName:              n.NodeName,
				ContextType:           mc.ContextType,
				SubscriptionTopicName: mc.SubscriptionTopicName,
				PublisherTopicName:    mc.PublisherTopicName,
				BroadcastFrameID:      mc.BroadcastFrameID,
				BroadcastChildFrameID: mc.BroadcastChildFrameID,
				LookupFrameID:         mc.LookupFrameID,
				LookupChildFrameID:    mc.LookupChildFrameID,
			})
		}
		if n.TfBroadcaster != nil {
			out.TfBroadcasters = append(out.TfBroadcasters, reader.TfBroadcasterRecord{
				NodeName:    n.NodeName,
				Transforms:  toFrames(n.TfBroadcaster.Transforms),
				CallbackIDs: n.TfBroadcaster.CallbackNames,
			})
		}
		if n.TfBuffer != nil {
			out.TfBuffers = append(out.TfBuffers, reader.TfBufferRecord{
				NodeName:         n.NodeName,
				ListenTransforms: toFrames(n.TfBuffer.ListenTransforms),
				LookupTransforms: toFrames(n.TfBuffer.LookupTransforms),
			})
		}
	}

	for _, e := range doc.Executors {
		out.Executors = append(out.Executors, reader.ExecutorRecord{
			Name:               e.ExecutorName,
			Kind:               e.ExecutorType,
			CallbackGroupNames: e.CallbackGroupNames,
		})
	}
	for _, p := range doc.NamedPaths {
		rec := reader.PathRecord{Name: p.PathName}
		for _, hop := range p.NodeChain {
			rec.Nodes = append(rec.Nodes, reader.PathNodeRecord{
				NodeName:           hop.NodeName,
				SubscribeTopicName: hop.SubscribeTopicName,
				PublishTopicName:   hop.PublishTopicName,
			})
		}
		out.Paths = append(out.Paths, rec)
	}
	for _, f := range doc.TfFrames {
		out.TfFrames = append(out.TfFrames, reader.TransformFrameRecord{
			FrameID:      f.FrameID,
			ChildFrameID: f.ChildFrameID,
		})
	}
	return out, nil
}

func toFrames(frames []yamlFrame) []reader.TransformFrameRecord {
	out := make([]reader.TransformFrameRecord, 0, len(frames))
	for _, f := range frames {
		out = append(out, reader.TransformFrameRecord{
			FrameID:      f.FrameID,
			ChildFrameID: f.ChildFrameID,
		})
	}
	return out
}
